package engine

import "fmt"

// GoodType is the commodity stored on a production building.
type GoodType int

const (
	GoodNone    GoodType = 0
	GoodIndigo  GoodType = 1
	GoodSugar   GoodType = 2
	GoodTobacco GoodType = 3
	GoodCoffee  GoodType = 4
	GoodSilver  GoodType = 5
)

var goodNames = map[GoodType]string{
	GoodNone:    "None",
	GoodIndigo:  "Indigo",
	GoodSugar:   "Sugar",
	GoodTobacco: "Tobacco",
	GoodCoffee:  "Coffee",
	GoodSilver:  "Silver",
}

func (g GoodType) String() string {
	if s, ok := goodNames[g]; ok {
		return s
	}
	return "Unknown"
}

// AllGoods returns the five good types, cheapest first.
func AllGoods() []GoodType {
	return []GoodType{GoodIndigo, GoodSugar, GoodTobacco, GoodCoffee, GoodSilver}
}

// Category groups cards by how they behave once built.
type Category int

const (
	CategoryNone       Category = 0
	CategoryProduction Category = 1 // has a good slot
	CategoryCity       Category = 2 // violet, carries a passive effect
	CategoryMonument   Category = 3 // end-game points or scoring formula
)

var categoryNames = map[Category]string{
	CategoryNone:       "None",
	CategoryProduction: "Production",
	CategoryCity:       "City",
	CategoryMonument:   "Monument",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "Unknown"
}

// Effect is the closed set of passive building effects.
type Effect int

const (
	EffectNone               Effect = iota
	EffectProductionDiscount        // -1 cost on production buildings
	EffectCityDiscount              // -1 cost on city and monument buildings
	EffectExtraProduction           // +1 producer slot
	EffectTradePrice                // +1 card per sale
	EffectCouncilKeep               // +1 card kept from council
	EffectChapel                    // discard a hand card for 1 point, once per round
	EffectBuildOver                 // may build on top of an existing building
	EffectGuildHall
	EffectResidence
	EffectFortress
	EffectCustomsHouse
	EffectCityHall
)

var effectNames = map[Effect]string{
	EffectNone:               "none",
	EffectProductionDiscount: "production_discount",
	EffectCityDiscount:       "city_discount",
	EffectExtraProduction:    "extra_production",
	EffectTradePrice:         "trade_price",
	EffectCouncilKeep:        "council_keep",
	EffectChapel:             "chapel",
	EffectBuildOver:          "build_over",
	EffectGuildHall:          "guild_hall",
	EffectResidence:          "residence",
	EffectFortress:           "fortress",
	EffectCustomsHouse:       "customs_house",
	EffectCityHall:           "city_hall",
}

func (e Effect) String() string {
	if s, ok := effectNames[e]; ok {
		return s
	}
	return "unknown"
}

// CardDef is a catalog entry. It is never mutated by the engine.
type CardDef struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Cost     int      `json:"cost"`
	Points   int      `json:"points"`
	Produces GoodType `json:"produces,omitempty"`
	Effect   Effect   `json:"effect,omitempty"`
	Count    int      `json:"count"`              // physical copies
	Starters int      `json:"starters,omitempty"` // copies set aside as first buildings
}

// Card is one physical copy of a CardDef.
type Card struct {
	ID       string   `json:"id"`
	DefID    string   `json:"def_id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Cost     int      `json:"cost"`
	Points   int      `json:"points"`
	Produces GoodType `json:"produces,omitempty"`
	Effect   Effect   `json:"effect,omitempty"`
}

// Copies returns the def's physical cards, numbered from 1.
func (d CardDef) Copies() []Card {
	cards := make([]Card, d.Count)
	for i := range cards {
		cards[i] = Card{
			ID:       fmt.Sprintf("%s-%02d", d.ID, i+1),
			DefID:    d.ID,
			Name:     d.Name,
			Category: d.Category,
			Cost:     d.Cost,
			Points:   d.Points,
			Produces: d.Produces,
			Effect:   d.Effect,
		}
	}
	return cards
}

// IsProduction reports whether the card has a good slot once built.
func (c Card) IsProduction() bool {
	return c.Category == CategoryProduction
}

// TradingTile maps each good to its sale price in cards.
type TradingTile map[GoodType]int

// Catalog is the read-only rule data the engine consumes.
type Catalog struct {
	Cards        []CardDef     `json:"cards"`
	Roles        []Role        `json:"roles"`
	TradingTiles []TradingTile `json:"trading_tiles"`
}

// HasRole reports whether the role is part of the catalog.
func (c Catalog) HasRole(r Role) bool {
	for _, role := range c.Roles {
		if role == r {
			return true
		}
	}
	return false
}

// Validate checks that the catalog can seat a game: distinct roles, and
// trading tiles that price every good.
func (c Catalog) Validate() error {
	if len(c.Roles) == 0 || len(c.TradingTiles) == 0 {
		return fmt.Errorf("catalog needs roles and trading tiles")
	}
	for i, r := range c.Roles {
		if (Catalog{Roles: c.Roles[:i]}).HasRole(r) {
			return fmt.Errorf("catalog lists role %s twice", r)
		}
	}
	for i, tile := range c.TradingTiles {
		for _, g := range AllGoods() {
			if _, ok := tile[g]; !ok {
				return fmt.Errorf("trading tile %d has no price for %s", i, g)
			}
		}
	}
	return nil
}

// BaseCatalog returns the standard card set, the five roles and five trading tiles.
func BaseCatalog() Catalog {
	var defs []CardDef
	add := func(n int, id, name string, cat Category, cost, points int, produces GoodType, effect Effect) {
		defs = append(defs, CardDef{
			ID: id, Name: name, Category: cat, Cost: cost, Points: points,
			Produces: produces, Effect: effect, Count: n,
		})
	}

	// Production
	add(14, "indigo-plant", "Indigo Plant", CategoryProduction, 1, 1, GoodIndigo, EffectNone)
	add(8, "sugar-mill", "Sugar Mill", CategoryProduction, 2, 1, GoodSugar, EffectNone)
	add(8, "tobacco-storage", "Tobacco Storage", CategoryProduction, 3, 2, GoodTobacco, EffectNone)
	add(8, "coffee-roaster", "Coffee Roaster", CategoryProduction, 4, 2, GoodCoffee, EffectNone)
	add(8, "silver-smelter", "Silver Smelter", CategoryProduction, 5, 3, GoodSilver, EffectNone)

	// City
	add(3, "smithy", "Smithy", CategoryCity, 1, 1, GoodNone, EffectProductionDiscount)
	add(3, "quarry", "Quarry", CategoryCity, 4, 2, GoodNone, EffectCityDiscount)
	add(3, "aqueduct", "Aqueduct", CategoryCity, 3, 2, GoodNone, EffectExtraProduction)
	add(3, "market-stand", "Market Stand", CategoryCity, 2, 1, GoodNone, EffectTradePrice)
	add(3, "prefecture", "Prefecture", CategoryCity, 3, 2, GoodNone, EffectCouncilKeep)
	add(3, "chapel", "Chapel", CategoryCity, 3, 2, GoodNone, EffectChapel)
	add(3, "crane", "Crane", CategoryCity, 2, 1, GoodNone, EffectBuildOver)

	// Monuments
	add(2, "guild-hall", "Guild Hall", CategoryMonument, 6, 0, GoodNone, EffectGuildHall)
	add(2, "residence", "Residence", CategoryMonument, 6, 0, GoodNone, EffectResidence)
	add(2, "fortress", "Fortress", CategoryMonument, 6, 0, GoodNone, EffectFortress)
	add(2, "customs-house", "Customs House", CategoryMonument, 6, 0, GoodNone, EffectCustomsHouse)
	add(2, "city-hall", "City Hall", CategoryMonument, 6, 0, GoodNone, EffectCityHall)
	add(3, "statue", "Statue", CategoryMonument, 3, 3, GoodNone, EffectNone)
	add(3, "victory-column", "Victory Column", CategoryMonument, 4, 4, GoodNone, EffectNone)
	add(3, "hero", "Hero", CategoryMonument, 5, 5, GoodNone, EffectNone)

	// Every player starts with an indigo plant in front of them.
	defs[0].Starters = 4

	return Catalog{
		Cards: defs,
		Roles: AllRoles(),
		TradingTiles: []TradingTile{
			{GoodIndigo: 1, GoodSugar: 1, GoodTobacco: 1, GoodCoffee: 2, GoodSilver: 2},
			{GoodIndigo: 1, GoodSugar: 1, GoodTobacco: 2, GoodCoffee: 2, GoodSilver: 2},
			{GoodIndigo: 1, GoodSugar: 1, GoodTobacco: 2, GoodCoffee: 2, GoodSilver: 3},
			{GoodIndigo: 1, GoodSugar: 2, GoodTobacco: 2, GoodCoffee: 2, GoodSilver: 3},
			{GoodIndigo: 1, GoodSugar: 1, GoodTobacco: 1, GoodCoffee: 2, GoodSilver: 3},
		},
	}
}
