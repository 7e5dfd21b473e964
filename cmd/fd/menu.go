package main

import (
	"errors"

	"github.com/zulandar/flightdesk/internal/airline"
	"github.com/zulandar/flightdesk/internal/prompt"
)

type menuItem struct {
	label string
	run   func(*airline.Session) error
}

var menuItems = []menuItem{
	{"Add Plane", airline.AddPlane},
	{"Add Pilot", airline.AddPilot},
	{"Add Flight", airline.AddFlight},
	{"Add Technician", airline.AddTechnician},
	{"Book Flight", airline.BookFlight},
	{"List number of available seats for a given flight.", airline.ListAvailableSeats},
	{"List total number of repairs per plane in descending order", airline.ListRepairsPerPlane},
	{"List total number of repairs per year in ascending order", airline.ListRepairsPerYear},
	{"Find total number of passengers with a given status", airline.ListPassengers},
}

// exitChoice follows the workflow entries.
var exitChoice = len(menuItems) + 1

func printMenu(p *prompt.Prompter) {
	p.Println("MAIN MENU")
	p.Println("---------")
	for i, item := range menuItems {
		p.Printf("%d. %s\n", i+1, item.label)
	}
	p.Printf("%d. < EXIT\n", exitChoice)
}

// runMenu dispatches workflows until the operator exits or input ends. A
// failed workflow is logged and reported in one line; the loop goes on.
func runMenu(s *airline.Session) error {
	for {
		printMenu(s.Prompt)
		choice, err := s.Prompt.ReadIntBetween("Please make your choice", 1, exitChoice)
		if errors.Is(err, prompt.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == exitChoice {
			return nil
		}

		item := menuItems[choice-1]
		if err := item.run(s); err != nil {
			if errors.Is(err, prompt.ErrClosed) {
				return nil
			}
			s.Log.Errorw("workflow failed", "workflow", item.label, "error", err)
			s.Prompt.Fail("%s", airline.Describe(err))
		}
		s.Prompt.Println()
	}
}
