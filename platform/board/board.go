package board

// The board is static: 40 tiles, each a tagged variant. Rent math keys
// off Kind rather than runtime type checks.

type TileKind int

const (
	KindGo TileKind = iota
	KindStreet
	KindRailroad
	KindUtility
	KindTax
	KindChance
	KindChest
	KindJail // just visiting
	KindFreeParking
	KindGoToJail
)

type Tile struct {
	Pos       int
	Name      string
	Kind      TileKind
	Group     string // street color group, "" otherwise
	Price     int
	Rent      []int // street: base, 1-4 houses, hotel
	HouseCost int
	Mortgage  int
	Tax       int
}

// Ownable reports whether the tile can be bought, auctioned or traded.
func (t Tile) Ownable() bool {
	switch t.Kind {
	case KindStreet, KindRailroad, KindUtility:
		return true
	}
	return false
}

const (
	Size    = 40
	GoPos   = 0
	JailPos = 10
)

// RailroadRent is indexed by the number of railroads the owner holds.
var RailroadRent = [5]int{0, 25, 50, 100, 200}

var layout = []Tile{
	{Pos: 0, Name: "GO", Kind: KindGo},
	{Pos: 1, Name: "Mediterranean Avenue", Kind: KindStreet, Group: "brown", Price: 60, Rent: []int{2, 10, 30, 90, 160, 250}, HouseCost: 50, Mortgage: 30},
	{Pos: 2, Name: "Community Chest", Kind: KindChest},
	{Pos: 3, Name: "Baltic Avenue", Kind: KindStreet, Group: "brown", Price: 60, Rent: []int{4, 20, 60, 180, 320, 450}, HouseCost: 50, Mortgage: 30},
	{Pos: 4, Name: "Income Tax", Kind: KindTax, Tax: 200},
	{Pos: 5, Name: "Reading Railroad", Kind: KindRailroad, Price: 200, Mortgage: 100},
	{Pos: 6, Name: "Oriental Avenue", Kind: KindStreet, Group: "lightblue", Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, HouseCost: 50, Mortgage: 50},
	{Pos: 7, Name: "Chance", Kind: KindChance},
	{Pos: 8, Name: "Vermont Avenue", Kind: KindStreet, Group: "lightblue", Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, HouseCost: 50, Mortgage: 50},
	{Pos: 9, Name: "Connecticut Avenue", Kind: KindStreet, Group: "lightblue", Price: 120, Rent: []int{8, 40, 100, 300, 450, 600}, HouseCost: 50, Mortgage: 60},
	{Pos: 10, Name: "Jail", Kind: KindJail},
	{Pos: 11, Name: "St. Charles Place", Kind: KindStreet, Group: "pink", Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, HouseCost: 100, Mortgage: 70},
	{Pos: 12, Name: "Electric Company", Kind: KindUtility, Price: 150, Mortgage: 75},
	{Pos: 13, Name: "States Avenue", Kind: KindStreet, Group: "pink", Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, HouseCost: 100, Mortgage: 70},
	{Pos: 14, Name: "Virginia Avenue", Kind: KindStreet, Group: "pink", Price: 160, Rent: []int{12, 60, 180, 500, 700, 900}, HouseCost: 100, Mortgage: 80},
	{Pos: 15, Name: "Pennsylvania Railroad", Kind: KindRailroad, Price: 200, Mortgage: 100},
	{Pos: 16, Name: "St. James Place", Kind: KindStreet, Group: "orange", Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, HouseCost: 100, Mortgage: 90},
	{Pos: 17, Name: "Community Chest", Kind: KindChest},
	{Pos: 18, Name: "Tennessee Avenue", Kind: KindStreet, Group: "orange", Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, HouseCost: 100, Mortgage: 90},
	{Pos: 19, Name: "New York Avenue", Kind: KindStreet, Group: "orange", Price: 200, Rent: []int{16, 80, 220, 600, 800, 1000}, HouseCost: 100, Mortgage: 100},
	{Pos: 20, Name: "Free Parking", Kind: KindFreeParking},
	{Pos: 21, Name: "Kentucky Avenue", Kind: KindStreet, Group: "red", Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, HouseCost: 150, Mortgage: 110},
	{Pos: 22, Name: "Chance", Kind: KindChance},
	{Pos: 23, Name: "Indiana Avenue", Kind: KindStreet, Group: "red", Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, HouseCost: 150, Mortgage: 110},
	{Pos: 24, Name: "Illinois Avenue", Kind: KindStreet, Group: "red", Price: 240, Rent: []int{20, 100, 300, 750, 925, 1100}, HouseCost: 150, Mortgage: 120},
	{Pos: 25, Name: "B&O Railroad", Kind: KindRailroad, Price: 200, Mortgage: 100},
	{Pos: 26, Name: "Atlantic Avenue", Kind: KindStreet, Group: "yellow", Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, HouseCost: 150, Mortgage: 130},
	{Pos: 27, Name: "Ventnor Avenue", Kind: KindStreet, Group: "yellow", Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, HouseCost: 150, Mortgage: 130},
	{Pos: 28, Name: "Water Works", Kind: KindUtility, Price: 150, Mortgage: 75},
	{Pos: 29, Name: "Marvin Gardens", Kind: KindStreet, Group: "yellow", Price: 280, Rent: []int{24, 120, 360, 850, 1025, 1200}, HouseCost: 150, Mortgage: 140},
	{Pos: 30, Name: "Go To Jail", Kind: KindGoToJail},
	{Pos: 31, Name: "Pacific Avenue", Kind: KindStreet, Group: "green", Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, HouseCost: 200, Mortgage: 150},
	{Pos: 32, Name: "North Carolina Avenue", Kind: KindStreet, Group: "green", Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, HouseCost: 200, Mortgage: 150},
	{Pos: 33, Name: "Community Chest", Kind: KindChest},
	{Pos: 34, Name: "Pennsylvania Avenue", Kind: KindStreet, Group: "green", Price: 320, Rent: []int{28, 150, 450, 1000, 1200, 1400}, HouseCost: 200, Mortgage: 160},
	{Pos: 35, Name: "Short Line", Kind: KindRailroad, Price: 200, Mortgage: 100},
	{Pos: 36, Name: "Chance", Kind: KindChance},
	{Pos: 37, Name: "Park Place", Kind: KindStreet, Group: "darkblue", Price: 350, Rent: []int{35, 175, 500, 1100, 1300, 1500}, HouseCost: 200, Mortgage: 175},
	{Pos: 38, Name: "Luxury Tax", Kind: KindTax, Tax: 100},
	{Pos: 39, Name: "Boardwalk", Kind: KindStreet, Group: "darkblue", Price: 400, Rent: []int{50, 200, 600, 1400, 1700, 2000}, HouseCost: 200, Mortgage: 200},
}

var groups map[string][]int

func init() {
	groups = make(map[string][]int)
	for _, t := range layout {
		if t.Group != "" {
			groups[t.Group] = append(groups[t.Group], t.Pos)
		}
	}
}

// ByPos returns the tile at a board position.
func ByPos(pos int) Tile {
	return layout[pos]
}

// Layout returns the full 40-tile board in position order.
func Layout() []Tile {
	return layout
}

// Group lists the positions making up a street color group.
func Group(name string) []int {
	return groups[name]
}

// Railroads lists the four railroad positions.
func Railroads() []int {
	return []int{5, 15, 25, 35}
}

// Utilities lists the two utility positions.
func Utilities() []int {
	return []int{12, 28}
}
