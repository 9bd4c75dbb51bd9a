package service

import "math/rand/v2"

// FunFactPrefix is prepended to every fact shown on the loading face.
const FunFactPrefix = "🧙 Do you know? "

var funFacts = [...]string{
	"The first edition of Dungeons & Dragons was published in 1974, created by Gary Gygax and Dave Arneson.",
	"The Beholder is a D&D-original monster — it doesn't exist in any mythology.",
	"The Ampersand (&) in the D&D logo is stylized as a dragon!",
	"The famous 20-sided die (d20) predates D&D — polyhedral dice were imported from Japan in the 1960s.",
	"In early editions, elves had to pick between being a fighter or a magic-user; they couldn't do both.",
	"Critical hits weren't in the original rules — they were added in Advanced Dungeons & Dragons.",
	"The first D&D adventure module was 'Palace of the Vampire Queen' (1976).",
	"The Tarrasque is inspired by a French legend of a dragon-like monster.",
	"The spell 'Magic Missile' has been in every edition since the beginning — and it always hits!",
	"The first D&D campaign world was Greyhawk, created by Gary Gygax.",
	"Many monsters, like Mind Flayers, were inspired by sci-fi rather than fantasy.",
	"The original D&D game assumed you'd be exploring a megadungeon, not an open world.",
	"In early editions, halflings were almost called 'hobbits' until legal issues forced a name change.",
	"Drizzt Do'Urden, the famous drow ranger, first appeared in a novel, not the rulebooks.",
	"The Dungeon Master's Screen was introduced in 1979 to hide dice rolls and notes.",
	"The Deck of Many Things has been ruining campaigns since 1975.",
	"Alignment (Lawful/Chaotic, Good/Evil) was originally inspired by Michael Moorcock's fantasy novels.",
	"The Gelatinous Cube was invented specifically to 'fit perfectly in a 10-foot dungeon corridor.'",
	"The term 'THAC0' (To Hit Armor Class 0) was a hallmark of 2nd edition and confused many new players.",
	"The longest continuous D&D game on record has been running for over 40 years!",
}

// FunFacts picks loading-screen trivia.
type FunFacts struct {
	intn func(n int) int
}

// NewFunFacts uses intn to pick an index; nil means math/rand.
func NewFunFacts(intn func(n int) int) *FunFacts {
	if intn == nil {
		intn = rand.IntN
	}
	return &FunFacts{intn: intn}
}

// Random returns one uniformly chosen fact with the prefix applied.
func (f *FunFacts) Random() string {
	return FunFactPrefix + funFacts[f.intn(len(funFacts))]
}

// FunFactCount is the size of the fact list.
func FunFactCount() int {
	return len(funFacts)
}
