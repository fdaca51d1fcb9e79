package skill

import (
	"context"
	"fmt"

	"github.com/illyshaieb/ace/action"
)

func (s *Skills) getTime() action.Descriptor {
	return action.Descriptor{
		Name:        "get_time",
		Description: "Get the current time.",
		Handler: func(_ context.Context, _ action.Args) (any, error) {
			return fmt.Sprintf("The current time is %s.", s.now().Format("15:04")), nil
		},
	}
}

func (s *Skills) getDate() action.Descriptor {
	return action.Descriptor{
		Name:        "get_date",
		Description: "Get today's date.",
		Handler: func(_ context.Context, _ action.Args) (any, error) {
			now := s.now()
			return fmt.Sprintf("Today's date is %s %d%s %s %d.",
				now.Format("Monday"), now.Day(), ordinalSuffix(now.Day()),
				now.Format("January"), now.Year()), nil
		},
	}
}

// ordinalSuffix returns the English ordinal suffix for a day of the
// month, with 11th, 12th and 13th as the usual exceptions.
func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
