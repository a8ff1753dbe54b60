package handhistory

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/maverickhq/maverick/internal/deck"
)

// Parser reads PHH-style hand history logs. Records are separated by blank
// lines; each record holds an optional "[id]" header and "key = value"
// lines, with the action list driving street and board reconstruction.
type Parser struct{}

// NewParser creates a hand history parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads every hand record from r. Unparseable records are skipped;
// Parse only fails on read errors.
func (p *Parser) Parse(r io.Reader) ([]Hand, error) {
	var hands []Hand
	var section []string

	flush := func() {
		if len(section) == 0 {
			return
		}
		if hand, ok := p.parseSection(section); ok {
			hands = append(hands, hand)
		}
		section = section[:0]
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		section = append(section, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return hands, nil
}

func (p *Parser) parseSection(lines []string) (Hand, bool) {
	hand := Hand{HoleCards: make(map[string][]deck.Card)}
	seen := false

	for _, line := range lines {
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if id, err := strconv.Atoi(strings.Trim(line, "[]")); err == nil {
				hand.ID = id
				seen = true
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		seen = true

		switch key {
		case "players":
			hand.Players = parseStringList(value)
		case "starting_stacks":
			hand.StartingStacks = parseIntList(value)
		case "actions":
			p.applyActions(&hand, parseStringList(value))
		}
	}

	return hand, seen
}

// applyActions walks the chronological action strings, advancing the street
// on dealer board actions, collecting community cards, and capturing hole
// cards shown at showdown.
func (p *Parser) applyActions(hand *Hand, actions []string) {
	street := Preflop

	for _, raw := range actions {
		parts := strings.Fields(raw)
		if len(parts) < 2 {
			continue
		}

		if parts[0] == "d" {
			if parts[1] == "db" && len(parts) >= 3 {
				street = nextStreet(street)
				hand.Community = append(hand.Community, parseCardsLoose(parts[2])...)
			}
			continue
		}

		if !strings.HasPrefix(parts[0], "p") {
			continue
		}

		action := Action{
			Player: parts[0],
			Type:   parts[1],
			Street: street,
		}
		if len(parts) > 2 {
			if amount, err := strconv.ParseFloat(parts[2], 64); err == nil {
				action.Amount = amount
			}
		}

		// Showdown reveals hole cards.
		if parts[1] == "sm" && len(parts) >= 3 {
			if cards := parseCardsLoose(parts[2]); len(cards) > 0 {
				hand.HoleCards[parts[0]] = cards
			}
		}

		hand.Actions = append(hand.Actions, action)
	}
}

func nextStreet(s Street) Street {
	switch s {
	case Preflop:
		return Flop
	case Flop:
		return Turn
	default:
		return River
	}
}

// parseCardsLoose parses concatenated two-character card tokens, silently
// dropping masked ("??") or malformed ones.
func parseCardsLoose(s string) []deck.Card {
	var cards []deck.Card
	for i := 0; i+2 <= len(s); i += 2 {
		card, err := deck.ParseCard(s[i : i+2])
		if err != nil {
			continue
		}
		cards = append(cards, card)
	}
	return cards
}

// parseStringList parses "['a', 'b', 'c']" style values.
func parseStringList(s string) []string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil
	}

	var items []string
	for _, item := range strings.Split(s[1:len(s)-1], ",") {
		item = strings.Trim(strings.TrimSpace(item), "'\"")
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseIntList(s string) []int {
	var ints []int
	for _, item := range parseStringList(s) {
		if n, err := strconv.Atoi(item); err == nil {
			ints = append(ints, n)
		}
	}
	return ints
}
