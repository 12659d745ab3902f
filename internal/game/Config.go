package game

import "time"

const (
	DefaultMapWidth    = 20
	DefaultMapHeight   = 10
	RenderDelay        = 200 * time.Millisecond
	MaxScriptRunTime   = 5 * time.Second
	DefaultHistoryPage = 10

	// robot calls allowed to a Lua strategy per grid cell, never fewer
	// than MinScriptCalls in total
	ScriptCallsPerCell = 64
	MinScriptCalls     = 1024
)
