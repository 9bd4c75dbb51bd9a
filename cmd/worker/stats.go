package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/stats"
)

// RunStats prints the derived stat set for the given inputs.
// Flag values are taken as raw field text, so "abc" behaves like an empty field.
func RunStats(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(w)

	scores := make(map[domain.Ability]*string, len(domain.Abilities))
	for _, a := range domain.Abilities {
		scores[a] = fs.String(string(a), "10", string(a)+" score")
	}
	level := fs.String("level", "1", "character level")
	prof := fs.String("prof", "", "comma separated proficient skills")

	if err := fs.Parse(args); err != nil {
		return err
	}

	in := domain.Inputs{
		Scores:     make(map[domain.Ability]string, len(scores)),
		Level:      *level,
		Proficient: make(map[string]bool),
	}
	for a, v := range scores {
		in.Scores[a] = *v
	}
	for _, name := range strings.Split(*prof, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := domain.LookupSkill(name); !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownSkill, name)
		}
		in.Proficient[name] = true
	}

	d := stats.Compute(in)
	for _, a := range domain.Abilities {
		fmt.Fprintf(w, "%-14s %s\n", domain.AbilityModID(a), stats.FormatSigned(d.AbilityModifiers[a]))
	}
	fmt.Fprintf(w, "%-14s %s\n", domain.ElemProficiencyBonus, stats.FormatSigned(d.ProficiencyBonus))
	fmt.Fprintf(w, "%-14s %s\n", domain.ElemInitiative, stats.FormatSigned(d.Initiative))
	for _, sk := range domain.Skills {
		mark := " "
		if in.Proficient[sk.Name] {
			mark = "*"
		}
		fmt.Fprintf(w, "%-14s %s %s\n", domain.SkillModID(sk.Name), stats.FormatSigned(d.SkillModifiers[sk.Name]), mark)
	}
	return nil
}
