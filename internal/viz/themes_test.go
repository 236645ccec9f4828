package viz

import "testing"

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeNight.Name)

	if GetTheme("missing").Name != ThemeNight.Name {
		t.Error("unknown theme should fall back to night")
	}

	SetTheme("night")
	seen := map[string]bool{}
	for range Themes {
		seen[CurrentTheme.Name] = true
		NextTheme()
	}
	if len(seen) != len(Themes) || CurrentTheme.Name != "night" {
		t.Errorf("cycle visited %v and ended on %s", seen, CurrentTheme.Name)
	}

	if names := ThemeNames(); len(names) != 3 || names[1] != "amber" {
		t.Errorf("names = %v", names)
	}
}
