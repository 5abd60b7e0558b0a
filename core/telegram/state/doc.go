// Package state keeps per-user conversation state for Telegram bots.
// Sessions live in memory only and are lost on restart.
package state
