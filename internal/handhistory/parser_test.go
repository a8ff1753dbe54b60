package handhistory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maverickhq/maverick/internal/deck"
)

const sampleLog = `[1]
players = ['Alice', 'Bob', 'Carol']
starting_stacks = [200, 150, 300]
actions = ['p1 cbr 6', 'p2 cc', 'p3 f', 'd db AhKd7c', 'p1 cbr 10', 'p2 cc', 'd db 2s', 'p1 cc', 'p2 cc', 'd db Qh', 'p1 sm AsAc', 'p2 sm KhQd']

[2]
players = ['Alice', 'Bob']
starting_stacks = [194, 134]
actions = ['p1 cc', 'p2 cc', 'd db 9h8h2c', 'p1 f']
`

func TestParseMultipleHands(t *testing.T) {
	hands, err := NewParser().Parse(strings.NewReader(sampleLog))
	require.NoError(t, err)
	require.Len(t, hands, 2)

	first := hands[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, first.Players)
	assert.Equal(t, []int{200, 150, 300}, first.StartingStacks)
	assert.Equal(t, deck.MustParseCards("AhKd7c2sQh"), first.Community)
	assert.Equal(t, deck.MustParseCards("AsAc"), first.HoleCards["p1"])
	assert.Equal(t, deck.MustParseCards("KhQd"), first.HoleCards["p2"])

	second := hands[1]
	assert.Equal(t, 2, second.ID)
	assert.Len(t, second.Community, 3)
	assert.Empty(t, second.HoleCards)
}

func TestParseTracksStreets(t *testing.T) {
	hands, err := NewParser().Parse(strings.NewReader(sampleLog))
	require.NoError(t, err)
	require.Len(t, hands, 2)

	actions := hands[0].Actions
	require.Len(t, actions, 9, "dealer actions are not player actions")

	assert.Equal(t, Preflop, actions[0].Street)
	assert.Equal(t, Action{Player: "p1", Type: "cbr", Amount: 6, Street: Preflop}, actions[0])
	assert.Equal(t, Flop, actions[3].Street)
	assert.Equal(t, Turn, actions[5].Street)
	assert.Equal(t, River, actions[7].Street)
	assert.Equal(t, "sm", actions[7].Type)
}

func TestParseDropsMaskedCards(t *testing.T) {
	log := `[7]
players = ['Alice', 'Bob']
actions = ['d db Ah??7c', 'p1 sm ????', 'p2 sm Kh2x']
`
	hands, err := NewParser().Parse(strings.NewReader(log))
	require.NoError(t, err)
	require.Len(t, hands, 1)

	hand := hands[0]
	assert.Equal(t, deck.MustParseCards("Ah7c"), hand.Community, "masked board tokens are dropped")
	assert.NotContains(t, hand.HoleCards, "p1", "fully masked showdown reveals nothing")
	assert.Equal(t, deck.MustParseCards("Kh"), hand.HoleCards["p2"])
}

func TestParseSkipsEmptyAndGarbageSections(t *testing.T) {
	log := `
this is not a hand record
neither is this


[3]
players = ['Alice', 'Bob']
`
	hands, err := NewParser().Parse(strings.NewReader(log))
	require.NoError(t, err)
	require.Len(t, hands, 1)
	assert.Equal(t, 3, hands[0].ID)
}

func TestParseEmptyInput(t *testing.T) {
	hands, err := NewParser().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, hands)
}
