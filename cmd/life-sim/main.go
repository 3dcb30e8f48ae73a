// Package main runs a life headless: advance N years and print what
// happened. Useful for balancing the catalog and eyeballing the
// progression rules without a frontend.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/simslyfe/server/internal/catalog"
	"github.com/simslyfe/server/internal/domain/persona"
	"github.com/simslyfe/server/internal/engine"
	"github.com/simslyfe/server/internal/platform/logger"
)

func main() {
	var (
		country = flag.String("country", catalog.DefaultCountry, "country code for the persona")
		years   = flag.Int("years", 18, "number of years to simulate")
		seed    = flag.Int64("seed", 0, "random seed (0 = nondeterministic)")
		name    = flag.String("name", "Alex Doe", "persona name")
	)
	flag.Parse()

	log := logger.NewNop()
	store := engine.NewStore(log, nil)
	if *seed != 0 {
		store.SetRand(rand.New(rand.NewSource(*seed)))
	}

	first, last := splitName(*name)
	store.SetProfile(persona.NewProfile(first, last, *country))

	for i := 0; i < *years; i++ {
		store.AdvanceYear()
	}

	s := store.Snapshot()
	for _, line := range s.EventLog {
		fmt.Println(line)
	}

	entry := catalog.Lookup(*country)
	fmt.Println("----------------------------------------")
	fmt.Printf("%s, age %d (%s)\n", *name, s.Age, entry.Name)
	fmt.Printf("Money:     %s%d\n", entry.Currency, s.Money)
	fmt.Printf("Health:    %d  Happiness: %d\n", s.Health, s.Happiness)
	fmt.Printf("Smarts:    %d  Looks: %d  Fame: %d\n", s.Smarts, s.Looks, s.Fame)
	fmt.Printf("Education: %s\n", s.EducationStatus)
	if s.CurrentEnrollment != nil {
		fmt.Printf("Enrolled:  %s (%g years left)\n", s.CurrentEnrollment.Name, s.CurrentEnrollment.TimeRemaining)
	}
	if len(s.CompletedDegrees) > 0 {
		fmt.Printf("Degrees:   %v\n", s.CompletedDegrees)
	}

	os.Exit(0)
}

func splitName(full string) (first, last string) {
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == ' ' {
			return full[:i], full[i+1:]
		}
	}
	return full, ""
}
