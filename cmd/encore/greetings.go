package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var stageDoorGreetings = [...]string{
	"The house lights are down. Your seat is empty.",
	"Soundcheck finished an hour ago. Where were you?",
	"The fan boards have opinions tonight. You're not in them.",
	"Someone just grabbed the last small hoodie. Probably.",
	"New video dropped. The comment section moved on without you.",
	"The stage door is right here. You keep walking past it.",
	"Membership has its privileges. Standing outside is not one of them.",
	"The encore only happens if people are in the room.",
	"Your bias posted a schedule update. You found out from a screenshot.",
	"Front-row energy, parking-lot location.",
	"The merch table doesn't restock for people who hesitate.",
	"Every regular on the boards started by signing in once.",
	"The setlist changed. You'd know that if you were inside.",
	"A banner with your favorite's face on it just went up. Inside.",
	"The fan cafe is warm. The sidewalk is not.",
	"Tickets sell out. Memberships don't wait either.",
	"You hummed the whole album today and still haven't come in.",
	"The photo archive grew by forty shots this week. You've seen zero.",
	"One door between you and the community you lurk on.",
	"Sign in. The encore is better with you in it.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fb7185")).
		Bold(true).
		Render("E N C O R E")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(stageDoorGreetings[rand.IntN(len(stageDoorGreetings))])

	fmt.Println()
	fmt.Println("  " + title)
	fmt.Println("  " + quote)
	fmt.Println()
	fmt.Println("  usage: encore [command]")
	fmt.Println()
	fmt.Println("  commands:")
	fmt.Println("    (none)     open the fan club")
	fmt.Println("    login      sign in and save the session")
	fmt.Println("    logout     sign out and clear the session")
	fmt.Println("    version    print the version")
	fmt.Println("    help       print this help")
	fmt.Println()
	fmt.Println("  configuration: ~/.encore/config.yaml, ENCORE_* env vars")
	fmt.Println()
}

func printGreeting() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fb7185")).
		Bold(true).
		Render("E N C O R E")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Italic(true).
		Render(stageDoorGreetings[rand.IntN(len(stageDoorGreetings))])

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("run `encore login` to come inside")

	fmt.Println()
	fmt.Println("  " + title)
	fmt.Println()
	fmt.Println("  " + quote)
	fmt.Println()
	fmt.Println("  " + hint)
	fmt.Println()
}
