// Package reward provides the fixed gift catalog granted after a
// completed lesson, and the inline keyboards of the course funnel.
package reward

// GiftID identifies a gift in the fixed catalog.
type GiftID string

// Gift identifiers. The catalog is fixed; resolving an unknown id is an
// error, never a silent default.
const (
	GiftRainSounds  GiftID = "gift_1"
	GiftChakraBonus GiftID = "gift_2"
	GiftCoinPack    GiftID = "gift_3"
)

// GiftConfig holds the display payload and coin value of one gift.
type GiftConfig struct {
	ID          GiftID
	Name        string
	Description string
	Coins       int64
}

// Gifts contains all grantable gifts.
var Gifts = map[GiftID]GiftConfig{
	GiftRainSounds: {
		ID:          GiftRainSounds,
		Name:        "🎵 Rain Sounds for Meditation",
		Description: "A 10-minute rain soundscape for deep relaxation",
		Coins:       50,
	},
	GiftChakraBonus: {
		ID:          GiftChakraBonus,
		Name:        "📖 Chakra Mini-Lesson",
		Description: "A bonus lesson on energy centers and how to balance them",
		Coins:       30,
	},
	GiftCoinPack: {
		ID:          GiftCoinPack,
		Name:        "🪙 Meditation Coins",
		Description: "100 bonus coins toward unlocking extra content",
		Coins:       100,
	},
}

// giftOrder is the display order of the catalog.
var giftOrder = []GiftID{GiftRainSounds, GiftChakraBonus, GiftCoinPack}

// GetAllGifts returns all gifts in display order.
func GetAllGifts() []GiftConfig {
	gifts := make([]GiftConfig, 0, len(giftOrder))
	for _, id := range giftOrder {
		if g, ok := Gifts[id]; ok {
			gifts = append(gifts, g)
		}
	}
	return gifts
}

// GetGift returns the gift config for a given id.
func GetGift(id GiftID) (GiftConfig, bool) {
	g, ok := Gifts[id]
	return g, ok
}
