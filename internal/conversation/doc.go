// Package conversation routes commands, button presses and free text of the art
// institute bot. Each user is in exactly one Mode; the mode decides how the next
// text message is answered. Replies are canned strings chosen by an AnswerSelector.
package conversation
