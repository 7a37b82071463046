package main

import (
	"fmt"
	"os"
	"path/filepath"

	"cyberquest/catalog"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dir := os.Getenv("CATALOG_DIR")
	if dir == "" {
		dir = "./config"
	}
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	exitCode := 0

	challengesPath := filepath.Join(dir, "challenges.json")
	cat, err := catalog.LoadChallenges(challengesPath)
	if err != nil {
		fmt.Printf("%s: %v\n", challengesPath, err)
		os.Exit(1)
	}
	byDifficulty := map[catalog.Difficulty]int{}
	for _, ch := range cat.Challenges() {
		byDifficulty[ch.Difficulty]++
	}
	fmt.Printf("%s: OK (%d challenges: %d beginner, %d intermediate, %d advanced)\n",
		challengesPath, cat.Size(),
		byDifficulty[catalog.DifficultyBeginner],
		byDifficulty[catalog.DifficultyIntermediate],
		byDifficulty[catalog.DifficultyAdvanced])

	ranksPath := filepath.Join(dir, "ranks.json")
	ranks, err := catalog.LoadRanks(ranksPath)
	if err != nil {
		fmt.Printf("%s: %v\n", ranksPath, err)
		exitCode = 1
	} else {
		fmt.Printf("%s: OK (%d tiers, top title %q)\n",
			ranksPath, len(ranks.Tiers()), ranks.Tiers()[len(ranks.Tiers())-1].Name)
	}

	badgesPath := filepath.Join(dir, "badges.json")
	badges, err := catalog.LoadBadges(badgesPath, cat)
	if err != nil {
		fmt.Printf("%s: %v\n", badgesPath, err)
		exitCode = 1
	} else {
		fmt.Printf("%s: OK (%d badges)\n", badgesPath, len(badges))
	}

	os.Exit(exitCode)
}
