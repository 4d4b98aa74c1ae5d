// Command cribbage-sim pits two bots against each other for a batch of
// games and reports the results. Useful for sanity-checking rule
// changes and comparing strategies.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nullromo/cribbage/engine"
	"github.com/nullromo/cribbage/engine/agent"
)

func newAgent(kind string, seed uint64) (agent.DecisionSource, error) {
	switch kind {
	case "random":
		return agent.NewRandom(seed), nil
	case "greedy":
		return agent.Greedy{}, nil
	}
	return nil, fmt.Errorf("unknown agent %q (random, greedy)", kind)
}

func main() {
	var (
		games   = flag.Int("games", 100, "number of games to play")
		seed    = flag.Uint64("seed", 0, "base seed; 0 uses the clock")
		agentA  = flag.String("a", "greedy", "seat 0 agent: random or greedy")
		agentB  = flag.String("b", "random", "seat 1 agent: random or greedy")
		verbose = flag.Bool("v", false, "print each game's result")
	)
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	base := *seed
	if base == 0 {
		base = uint64(time.Now().UnixNano())
	}

	var wins [engine.NumPlayers]int
	for i := 0; i < *games; i++ {
		gameSeed := base + uint64(i)
		a, err := newAgent(*agentA, gameSeed)
		if err != nil {
			log.Fatal(err)
		}
		b, err := newAgent(*agentB, gameSeed^0xabcdef)
		if err != nil {
			log.Fatal(err)
		}
		g := engine.NewGame(gameSeed, *agentA, *agentB)
		winner, err := agent.Play(g, [engine.NumPlayers]agent.DecisionSource{a, b})
		if err != nil {
			log.WithError(err).WithField("seed", gameSeed).Error("game aborted")
			os.Exit(1)
		}
		wins[winner]++
		log.WithFields(logrus.Fields{
			"seed":   gameSeed,
			"winner": g.Players[winner].Name,
			"score":  fmt.Sprintf("%d-%d", g.Players[0].Score, g.Players[1].Score),
		}).Debug("game finished")
	}

	fmt.Printf("%s wins: %d (%.1f%%)\n", *agentA, wins[0], 100*float64(wins[0])/float64(*games))
	fmt.Printf("%s wins: %d (%.1f%%)\n", *agentB, wins[1], 100*float64(wins[1])/float64(*games))
}
