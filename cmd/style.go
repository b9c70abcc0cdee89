package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/casino/domain/blackjack"
	"github.com/luca-patrignani/casino/domain/cards"
	"github.com/luca-patrignani/casino/domain/casino"
	"github.com/luca-patrignani/casino/domain/money"
	"github.com/luca-patrignani/casino/domain/stats"
	"github.com/luca-patrignani/casino/ledger"
)

const historyRows = 20

func cardString(c cards.Card) string {
	switch c.Suit() {
	case cards.Diamonds, cards.Hearts:
		return pterm.LightRed(c.String())
	default:
		return pterm.LightWhite(c.String())
	}
}

func handCards(h blackjack.Hand) string {
	shown := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		if i < h.HiddenCount {
			shown[i] = pterm.Gray(cards.FaceDown)
			continue
		}
		shown[i] = cardString(c)
	}
	return strings.Join(shown, "  ")
}

// handTotal is the value shown under a hand, "?" while a card is down.
func handTotal(h blackjack.Hand) string {
	if !h.Revealed() {
		return "?"
	}
	if h.IsSoft() {
		return "soft " + strconv.Itoa(h.Sum())
	}
	return strconv.Itoa(h.Sum())
}

func handStatus(h blackjack.Hand) string {
	switch {
	case !h.Revealed():
		return ""
	case h.IsNaturalBlackjack():
		return "blackjack"
	case h.IsBust():
		return "bust"
	case h.DoubledDown:
		return "doubled"
	case h.Standing:
		return "standing"
	default:
		return ""
	}
}

func statusColor(status string) string {
	switch status {
	case "blackjack":
		return pterm.LightYellow(status)
	case "bust":
		return pterm.LightRed(status)
	case "":
		return ""
	default:
		return pterm.LightCyan(status)
	}
}

func dealerPanel(h blackjack.Hand) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := pterm.Sprintf("%s\nTotal: %s %s", handCards(h), handTotal(h), statusColor(handStatus(h)))
	return pterm.Panel{Data: pbox.WithTitle(pterm.LightMagenta("|DEALER|")).WithTitleTopCenter().Sprint(body)}
}

func playerPanel(h blackjack.Hand, idx int, current bool) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	title := "Hand " + strconv.Itoa(idx+1)
	if current {
		title = pterm.LightGreen("> " + title)
	}
	body := pterm.Sprintf("%s\nTotal: %s %s\nStake: %s", handCards(h), handTotal(h), statusColor(handStatus(h)), h.Stake)
	return pterm.Panel{Data: pbox.WithTitle(title).WithTitleTopLeft().Sprint(body)}
}

func printTable(r *blackjack.Round, bankroll money.Money) {
	hands := r.Hands()
	players := make([]pterm.Panel, len(hands))
	for i, h := range hands {
		current := r.Phase() == blackjack.PhasePlayerActions && i == r.CurrentHandIndex() && len(hands) > 1
		players[i] = playerPanel(h, i, current)
	}
	footer := pterm.BgGreen.Sprintf(" Bankroll: %s ", bankroll)
	if r.Insured() {
		footer += " " + pterm.BgYellow.Sprintf(" Insured for %s ", r.InsuranceCost())
	}
	pterm.DefaultPanel.WithPanels(pterm.Panels{
		{dealerPanel(r.Dealer())},
		players,
		{{Data: footer}},
	}).Render()
}

func actionLabel(a blackjack.Action) string {
	switch a {
	case blackjack.ActionHit:
		return "Hit"
	case blackjack.ActionStand:
		return "Stand"
	case blackjack.ActionDouble:
		return "Double down"
	case blackjack.ActionSplit:
		return "Split"
	default:
		return string(a)
	}
}

func outcomeLabel(o blackjack.Outcome) string {
	switch o {
	case blackjack.OutcomeWin:
		return "won"
	case blackjack.OutcomeBlackjack:
		return "won with a blackjack"
	case blackjack.OutcomePush:
		return "pushed"
	case blackjack.OutcomeLoss:
		return "lost"
	case blackjack.OutcomeBust:
		return "busted"
	default:
		return string(o)
	}
}

// signed prints positive amounts with a leading plus.
func signed(m money.Money) string {
	if m.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func settlementLines(s blackjack.Settlement) []string {
	var lines []string
	switch {
	case !s.DealerPlayed:
		lines = append(lines, "Dealer never played")
	case s.DealerBlackjack:
		lines = append(lines, "Dealer has blackjack")
	case s.DealerBust:
		lines = append(lines, fmt.Sprintf("Dealer busts with %d", s.DealerSum))
	default:
		lines = append(lines, fmt.Sprintf("Dealer stands on %d", s.DealerSum))
	}
	for _, h := range s.Hands {
		lines = append(lines, fmt.Sprintf("Hand %d %s: %s", h.Hand+1, outcomeLabel(h.Outcome), signed(h.Payout.Sub(h.Stake))))
	}
	if s.Insured {
		if s.InsurancePayout.IsPositive() {
			lines = append(lines, "Insurance pays: "+signed(s.InsurancePayout.Sub(s.InsuranceStake)))
		} else {
			lines = append(lines, "Insurance lost: "+s.InsuranceStake.Neg().String())
		}
	}
	lines = append(lines, "Net: "+signed(s.Net()))
	if s.GiftGranted {
		lines = append(lines, "Mister Green gifts you "+s.Gift.String())
	}
	lines = append(lines, "Bankroll: "+s.Bankroll.String())
	return lines
}

func printSettlement(s blackjack.Settlement) {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	title := pterm.LightYellow("|PUSH|")
	switch {
	case s.Net().IsPositive():
		title = pterm.LightGreen("|YOU WIN|")
	case s.Net().IsNegative():
		title = pterm.LightRed("|YOU LOSE|")
	}
	pbox.WithTitle(title).WithTitleTopCenter().Println(strings.Join(settlementLines(s), "\n"))
}

func statsTable(balance money.Money, st stats.Statistics) pterm.TableData {
	bj := st.Blackjack
	return pterm.TableData{
		{"Statistic", "Value"},
		{"Bankroll", balance.String()},
		{"Biggest bankroll", st.BiggestBankroll.String()},
		{"Times bankrupted", strconv.Itoa(st.TimesBankrupted)},
		{"Hands played", strconv.Itoa(bj.HandsPlayed())},
		{"Hands won", strconv.Itoa(bj.HandsWon)},
		{"Hands lost", strconv.Itoa(bj.HandsLost)},
		{"Hands pushed", strconv.Itoa(bj.HandsPushed)},
		{"Money won", bj.MoneyWon.String()},
		{"Money lost", bj.MoneyLost.String()},
		{"Net", signed(bj.Net())},
		{"Biggest win", bj.BiggestWin.String()},
		{"Biggest loss", bj.BiggestLoss.String()},
	}
}

func printStats(c *casino.Casino) {
	pterm.DefaultSection.Println("Statistics")
	if err := pterm.DefaultTable.WithHasHeader().WithData(statsTable(c.Balance(), c.Stats())).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

func historyTable(entries []ledger.Entry) pterm.TableData {
	data := pterm.TableData{{"#", "When", "Bet", "Outcome", "Net", "Bankroll"}}
	for _, e := range entries {
		outcome := strings.Join(e.Outcomes, ", ")
		if e.Gift {
			outcome += " (gift)"
		}
		data = append(data, []string{
			strconv.Itoa(e.Index),
			time.Unix(e.Timestamp, 0).Format(time.DateTime),
			e.Bet.String(),
			outcome,
			signed(e.Net),
			e.Bankroll.String(),
		})
	}
	return data
}

func printHistory(entries []ledger.Entry) {
	if len(entries) == 0 {
		pterm.Info.Println("No rounds played yet.")
		return
	}
	pterm.DefaultSection.Println("Recent rounds")
	if err := pterm.DefaultTable.WithHasHeader().WithData(historyTable(entries)).Render(); err != nil {
		pterm.Error.Println(err)
	}
}
