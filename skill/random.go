package skill

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/illyshaieb/ace/action"
)

func (s *Skills) flipCoin() action.Descriptor {
	return action.Descriptor{
		Name:        "flip_coin",
		Description: "Flip a coin and report heads or tails.",
		Handler: func(_ context.Context, _ action.Args) (any, error) {
			if rand.IntN(2) == 0 {
				return "Heads", nil
			}
			return "Tails", nil
		},
	}
}

func (s *Skills) rollDie() action.Descriptor {
	return action.Descriptor{
		Name:        "roll_die",
		Description: "Roll a die and report the result. Rolls six sides unless told otherwise.",
		Params: action.Params{
			{Name: "sides", Type: action.TypeInteger, Description: "Number of sides on the die.", Required: false},
		},
		Handler: func(_ context.Context, args action.Args) (any, error) {
			sides := 6
			if _, present := args["sides"]; present {
				sides = args.Int("sides")
				if sides < 2 {
					return nil, fmt.Errorf("a die needs at least 2 sides, got %d", sides)
				}
			}
			return rand.IntN(sides) + 1, nil
		},
	}
}

func (s *Skills) randomNumber() action.Descriptor {
	return action.Descriptor{
		Name:        "random_number",
		Description: "Pick a random whole number between two bounds, inclusive.",
		Params: action.Params{
			{Name: "min_value", Type: action.TypeInteger, Description: "Lower bound.", Required: true},
			{Name: "max_value", Type: action.TypeInteger, Description: "Upper bound.", Required: true},
		},
		RequiresInput: true,
		Handler: func(_ context.Context, args action.Args) (any, error) {
			min := args.Int("min_value")
			max := args.Int("max_value")
			if min > max {
				return nil, fmt.Errorf("min_value %d is greater than max_value %d", min, max)
			}
			return min + rand.IntN(max-min+1), nil
		},
	}
}
