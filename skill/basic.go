package skill

import (
	"context"

	"github.com/illyshaieb/ace/action"
)

func (s *Skills) greet() action.Descriptor {
	return action.Descriptor{
		Name:        "greet",
		Description: "Greet the user.",
		Handler: func(_ context.Context, _ action.Args) (any, error) {
			return "Hello! How can I assist you today?", nil
		},
	}
}

func (s *Skills) identify() action.Descriptor {
	return action.Descriptor{
		Name:        "identify",
		Description: "State who the assistant is.",
		Handler: func(_ context.Context, _ action.Args) (any, error) {
			return "I am ACE, your personal assistant.", nil
		},
	}
}

func (s *Skills) creator() action.Descriptor {
	return action.Descriptor{
		Name:        "creator",
		Description: "State who created the assistant.",
		Handler: func(_ context.Context, _ action.Args) (any, error) {
			return "I was created by Illy Shaieb.", nil
		},
	}
}

func (s *Skills) help() action.Descriptor {
	return action.Descriptor{
		Name:        "help",
		Description: "Describe what the assistant can do.",
		Handler: func(_ context.Context, _ action.Args) (any, error) {
			return "I can assist you with various tasks. " +
				"Try asking me about the time, date, weather, or for a joke!", nil
		},
	}
}
