package prompts

// SceneInstruction seeds the transcript as the first user turn of every
// session. The narration service treats it as the opening request.
const SceneInstruction = `You are the narrator of a dark, atmospheric text adventure set in a vast underground cavern. The player has just woken up alone in the dark with no memory of how they got there. Narrate in second person, present tense. Keep each response to one or two short paragraphs. Never break character, never mention that you are an AI, and always end in a way that invites the player's next action. Begin by describing the player waking in the cave.`

// AwakeningText is the transient placeholder shown while the opening
// narration is being fetched.
const AwakeningText = "The darkness stirs..."

// NarrationErrorText is the fixed line shown to the player when a
// narration call fails, whatever the cause.
const NarrationErrorText = "The cave swallows your words. The storyteller is silent. (Try again.)"

// EmptyInventoryText is rendered when the inventory holds nothing.
const EmptyInventoryText = "Your inventory is empty."
