package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/casino/domain/blackjack"
	"github.com/luca-patrignani/casino/domain/casino"
	"github.com/luca-patrignani/casino/domain/money"
)

// pause between dealer cards so the player can follow the draw.
var pause = 700 * time.Millisecond

var errQuit = errors.New("quit")

func playBlackjack(c *casino.Casino) error {
	if c.FirstRun() {
		pterm.Success.Printfln("Welcome! Mister Green spots you %s to get started.", c.Balance())
	}
	lastBet := money.FromMajor(10)
	for {
		pterm.DefaultSection.Println("New hand")
		pterm.Info.Printfln("Bankroll: %s, %d cards left in the shoe", pterm.LightGreen(c.Balance()), c.ShoeRemaining())

		bet, err := askBet(c.Balance(), lastBet)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return err
		}
		lastBet = bet

		if err := playRound(c, bet); err != nil {
			return err
		}

		again, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Play another hand?").WithDefaultValue(true).Show()
		if !again {
			break
		}
	}
	pterm.Info.Printfln("You leave the table with %s", pterm.LightGreen(c.Balance()))
	return nil
}

// askBet prompts until the player enters a positive amount the bankroll
// covers, or leaves with an empty answer or "q".
func askBet(balance, suggested money.Money) (money.Money, error) {
	if suggested.GreaterThan(balance) {
		suggested = balance
	}
	for {
		text, err := pterm.DefaultInteractiveTextInput.
			WithDefaultText(fmt.Sprintf("Your bet (max %s, q to leave)", balance)).
			WithDefaultValue(suggested.Decimal()).
			Show()
		if err != nil {
			return money.Money{}, err
		}
		bet, err := parseBet(text, balance)
		if err != nil {
			if errors.Is(err, errQuit) {
				return money.Money{}, err
			}
			pterm.Error.Println(err)
			continue
		}
		return bet, nil
	}
}

func parseBet(text string, balance money.Money) (money.Money, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, "q") || strings.EqualFold(text, "quit") {
		return money.Money{}, errQuit
	}
	bet, err := money.Parse(text)
	if err != nil {
		return money.Money{}, err
	}
	if !bet.IsPositive() {
		return money.Money{}, fmt.Errorf("%w: got %s", blackjack.ErrInvalidBet, bet)
	}
	if bet.GreaterThan(balance) {
		return money.Money{}, fmt.Errorf("%w: you only have %s", blackjack.ErrInsufficientFunds, balance)
	}
	return bet, nil
}

func playRound(c *casino.Casino, bet money.Money) error {
	r, err := c.NewRound()
	if err != nil {
		return err
	}
	if err := r.PlaceBet(bet); err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Dealing ...")
	if err := r.Deal(); err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()
	printTable(r, c.Balance())

	if r.CanPlaceInsurance() {
		if err := offerInsurance(r); err != nil {
			return err
		}
	}
	if r.CurrentHand().IsNaturalBlackjack() && !r.IsSplit() {
		pterm.Success.Println("Blackjack!")
	}

	for r.Phase() == blackjack.PhasePlayerActions {
		if err := playerTurn(r); err != nil {
			pterm.Error.Println(err)
		}
		printTable(r, c.Balance())
	}

	if r.Phase() == blackjack.PhaseDealerReveal {
		if err := dealerTurn(r); err != nil {
			return err
		}
		printTable(r, c.Balance())
	}

	s, err := c.FinishRound(r)
	if err != nil {
		return err
	}
	printSettlement(s)
	if s.GiftGranted {
		pterm.Warning.Printfln("You ran dry. Mister Green hands you %s, keep your chin up.", s.Gift)
	}
	return nil
}

func offerInsurance(r *blackjack.Round) error {
	take, _ := pterm.DefaultInteractiveConfirm.
		WithDefaultText(fmt.Sprintf("The dealer shows an ace. Take insurance for %s?", r.InsuranceCost())).
		WithDefaultValue(false).
		Show()
	if take {
		return r.PlaceInsurance()
	}
	return r.DeclineInsurance()
}

func playerTurn(r *blackjack.Round) error {
	actions := r.AvailableActions()
	if len(actions) == 0 {
		return fmt.Errorf("no action available in %s", r.Phase())
	}
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = actionLabel(a)
	}
	prompt := "Your move"
	if r.IsSplit() {
		prompt = fmt.Sprintf("Your move on hand %d", r.CurrentHandIndex()+1)
	}
	selected, err := pterm.DefaultInteractiveSelect.WithDefaultText(prompt).WithOptions(labels).Show()
	if err != nil {
		return err
	}
	i := slices.Index(labels, selected)
	if i < 0 {
		return fmt.Errorf("unknown action %q", selected)
	}
	return r.Act(actions[i])
}

func dealerTurn(r *blackjack.Round) error {
	spinner, _ := pterm.DefaultSpinner.Start("The dealer turns over the hole card ...")
	time.Sleep(pause)
	if err := r.RevealHoleCard(); err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success("Dealer: ", handCards(r.Dealer()))

	for {
		spinner, _ := pterm.DefaultSpinner.Start("The dealer plays ...")
		time.Sleep(pause)
		drew, err := r.DealerStep()
		if err != nil {
			spinner.Fail()
			return err
		}
		dealer := r.Dealer()
		if !drew {
			spinner.Info("Dealer stops at ", handTotal(dealer))
			return nil
		}
		spinner.Success("Dealer draws ", cardString(dealer.Cards[len(dealer.Cards)-1]), ", total ", handTotal(dealer))
	}
}
