package gauge

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Texts holds the label callbacks a gauge renders with.
// Amounts are passed already formatted with their currency.
type Texts struct {
	MainText    func(boxCount int, perBox string) string
	Amount      func(selection int) string
	PerBox      func(value string) string
	Prize       func(total string) string
	Warning     string
	Win         func(total string, bomb int) string
	Lose        func(bomb int) string
	Button      string
	LotteryText string
	Odds        func(p1, v1, p2, v2 string) string
	SafeChoices func(n int) string
}

// DefaultTexts returns the built-in English labels.
func DefaultTexts() Texts {
	return Texts{
		MainText: func(boxCount int, perBox string) string {
			return fmt.Sprintf("Below you see %d black boxes. **In one of these boxes there is a bomb.** "+
				"You have to decide how many boxes you want to open. **Each box contains %s**. "+
				"You will get the sum of all the boxes you opened. "+
				"However, if you **open the box with the bomb, you get nothing**. "+
				"**How many boxes do you want to open?**", boxCount, perBox)
		},
		Amount: func(selection int) string {
			return fmt.Sprintf("Boxes to open: %d", selection)
		},
		PerBox: func(value string) string {
			return "Value per box: " + value
		},
		Prize: func(total string) string {
			return "Prize if no bomb: " + total
		},
		Warning: "You must open at least one box.",
		Win: func(total string, bomb int) string {
			return fmt.Sprintf("The bomb was in box %d. You win %s!", bomb, total)
		},
		Lose: func(bomb int) string {
			return fmt.Sprintf("The bomb was in box %d. You opened it and get nothing.", bomb)
		},
		Button: "Open Boxes",
		LotteryText: "In each row, choose the lottery you prefer. " +
			"One row will be drawn at random and the lottery you chose there is played for real.",
		Odds: func(p1, v1, p2, v2 string) string {
			return fmt.Sprintf("%s chance to win %s and %s chance to win %s", p1, v1, p2, v2)
		},
		SafeChoices: func(n int) string {
			return fmt.Sprintf("Rows choosing A: %d", n)
		},
	}
}

// withDefaults fills every zero field from DefaultTexts.
func (t Texts) withDefaults() Texts {
	d := DefaultTexts()
	if t.MainText == nil {
		t.MainText = d.MainText
	}
	if t.Amount == nil {
		t.Amount = d.Amount
	}
	if t.PerBox == nil {
		t.PerBox = d.PerBox
	}
	if t.Prize == nil {
		t.Prize = d.Prize
	}
	if t.Warning == "" {
		t.Warning = d.Warning
	}
	if t.Win == nil {
		t.Win = d.Win
	}
	if t.Lose == nil {
		t.Lose = d.Lose
	}
	if t.Button == "" {
		t.Button = d.Button
	}
	if t.LotteryText == "" {
		t.LotteryText = d.LotteryText
	}
	if t.Odds == nil {
		t.Odds = d.Odds
	}
	if t.SafeChoices == nil {
		t.SafeChoices = d.SafeChoices
	}
	return t
}

// FormatMoney renders an amount with two decimals. Single-rune currency
// symbols are prefixed ("$2.00"), codes are suffixed ("2.00 ECU").
func FormatMoney(amount decimal.Decimal, currency string) string {
	s := amount.StringFixed(2)
	switch {
	case currency == "":
		return s
	case utf8.RuneCountInString(currency) == 1:
		if strings.HasPrefix(s, "-") {
			return "-" + currency + s[1:]
		}
		return currency + s
	default:
		return s + " " + currency
	}
}
