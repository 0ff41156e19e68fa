// Package backend is the generation boundary: given a composed prompt,
// a provider returns generated text or fails. Providers observe their
// context promptly: a cancelled request terminates the outstanding call
// and never reports success after cancellation was observed.
//
// Four providers are built in: anthropic, openai, and gemini talk to
// their hosted APIs through the official SDKs; exec spawns a configured
// local command, pipes the prompt to its stdin, and collects stdout.
//
// Backends commonly wrap generated code in a markdown fence even when
// asked not to; [StripFences] normalizes that before the text is applied
// to a document.
package backend
