package classifier

import "testing"

func TestClassifyKnownNames(t *testing.T) {
	cls := Default()
	cases := []struct {
		name string
		want Category
	}{
		{"Gholdengo ex", Pokemon},
		{"Munkidori", Pokemon},
		{"Coin Bonus", Ability},
		{"Make It Rain", Attack},
		{"Nest Ball", Trainer},
		{"Artazon", Trainer},
		{"Basic Psychic Energy", Energy},
		{"Some Unheard Of Card", Unknown},
	}
	for _, c := range cases {
		if got := cls.Classify(c.name); got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestClassifyAttackSentence(t *testing.T) {
	cls := Default()
	// Full attack sentences leak into card lists; they must be recognized
	// before any table lookup.
	got := cls.Classify("Make It Rain on Bob's Ralts for 60 damage")
	if got != Attack {
		t.Errorf("Classify(attack sentence) = %v, want Attack", got)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	cls := Default()
	for _, name := range []string{"", "x", "12345", "Ralts", "totally made up"} {
		got := cls.Classify(name)
		if got.String() == "" {
			t.Errorf("Classify(%q) produced empty category string", name)
		}
	}
}

func TestTrainerCategory(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Professor's Research", "Supporter"},
		{"Marnie", "Supporter"},
		{"Ultra Ball", "Item"},
		{"Earthen Vessel", "Item"},
		{"Switch", "Item"},
		{"Artazon", ""},
	}
	for _, c := range cases {
		if got := TrainerCategory(c.name); got != c.want {
			t.Errorf("TrainerCategory(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestGuess(t *testing.T) {
	cases := []struct {
		name string
		want Category
	}{
		{"Master Ball", Trainer},
		{"Professor Oak", Trainer},
		{"Jet Energy", Energy},
		{"Pikachu", Unknown},
	}
	for _, c := range cases {
		if got := Guess(c.name); got != c.want {
			t.Errorf("Guess(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestIsAbilityArtifact(t *testing.T) {
	cls := Default()
	artifacts := []string{
		"Coin Bonus",
		"Make It Rain",
		"Coin Bonus drew a card",
		"2 damage counters",
		"a Prize card",
	}
	for _, name := range artifacts {
		if !cls.IsAbilityArtifact(name) {
			t.Errorf("IsAbilityArtifact(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"Ultra Ball", "Gholdengo ex", "Basic Metal Energy"} {
		if cls.IsAbilityArtifact(name) {
			t.Errorf("IsAbilityArtifact(%q) = true, want false", name)
		}
	}
}

func TestCustomTables(t *testing.T) {
	cls := New(Tables{
		Pokemon: toSet("Testmon"),
	})
	if got := cls.Classify("Testmon"); got != Pokemon {
		t.Errorf("Classify with custom table = %v, want Pokemon", got)
	}
	if got := cls.Classify("Nest Ball"); got != Unknown {
		t.Errorf("custom tables should not include defaults, got %v", got)
	}
}
