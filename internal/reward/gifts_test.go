package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGift(t *testing.T) {
	g, ok := GetGift(GiftRainSounds)
	require.True(t, ok)
	assert.Equal(t, GiftRainSounds, g.ID)
	assert.Equal(t, int64(50), g.Coins)

	_, ok = GetGift(GiftID("gift_99"))
	assert.False(t, ok)
}

func TestGetAllGifts(t *testing.T) {
	gifts := GetAllGifts()
	require.Len(t, gifts, len(Gifts))

	// Fixed display order
	assert.Equal(t, GiftRainSounds, gifts[0].ID)
	assert.Equal(t, GiftChakraBonus, gifts[1].ID)
	assert.Equal(t, GiftCoinPack, gifts[2].ID)

	for _, g := range gifts {
		assert.NotEmpty(t, g.Name)
		assert.NotEmpty(t, g.Description)
		assert.Greater(t, g.Coins, int64(0))
	}
}

func TestGiftCallback(t *testing.T) {
	data := GiftCallback(GiftChakraBonus, "u1:2:2")
	assert.Equal(t, "gift:gift_2:u1:2:2", data)
}

func TestBuildGiftSelection(t *testing.T) {
	markup := BuildGiftSelection("u1:1:1")
	require.Len(t, markup.InlineKeyboard, len(Gifts))

	for i, gift := range GetAllGifts() {
		row := markup.InlineKeyboard[i]
		require.Len(t, row, 1)
		assert.Equal(t, gift.Name, row[0].Text)
		assert.Equal(t, GiftCallback(gift.ID, "u1:1:1"), row[0].Unique)
	}
}
