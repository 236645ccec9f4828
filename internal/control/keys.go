package control

// keyActions binds terminal key names to actions.
var keyActions = map[string]Action{
	"e":   SelectNext,
	"q":   SelectPrev,
	"esc": Deselect,
	"R":   GrowRadius,
	"F":   ShrinkRadius,
	"t":   Denser,
	"g":   Lighter,
	"h":   MoveLeft,
	"l":   MoveRight,
	"j":   MoveDown,
	"k":   MoveUp,
	"u":   MoveNear,
	"i":   MoveFar,
	"`":   ClearScene,
	"]":   LaunchFaster,
	"[":   LaunchSlower,
	"0":   LaunchStop,
}

// KeyAction resolves a key name as reported by bubbletea.
func KeyAction(key string) (Action, bool) {
	a, ok := keyActions[key]
	return a, ok
}

// PremadeSlot reports which premade slot a number key selects.
func PremadeSlot(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '0'), true
}
