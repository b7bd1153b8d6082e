package common

/*
Level 	# Tiles 	Tile width
(° of longitudes) 	m / pixel
(on Equator) 	~ Scale
(on screen) 	Examples of
areas to represent
0 	1 	360 	156 543 	1:500 million 	whole world
3 	64 	45 	19 568 	1:70 million 	largest country
6 	4 096 	5.625 	2 446 	1:10 million 	large European country
9 	262 144 	0.703 	305.748 	1:1 million 	wide area, large metropolitan area
12 	16 777 216 	0.088 	38.219 	1:150 thousand 	town, or city district
15 	1 073 741 824 	0.011 	4.777 	1:15 thousand 	small road
18 	68 719 476 736 	0.001 	0.597 	1:2 thousand 	some buildings, trees
20 	1 099 511 627 776 	0.00025 	0.149 	1:5 hundred 	A mid-sized building

A 6 degree wide grid zone fills a screen around level 6, which is where
100 km squares start to be worth drawing. Each further grid decade (10 km,
1 km, 100 m) needs roughly three more levels to stay legible.
*/

type SlippyZoomLevelT int

var (
	// SlippyZoomLevel0 represents, eg. the whole world
	SlippyZoomLevel0 SlippyZoomLevelT = 0
	// SlippyZoomLevel6 represents, eg. a large European country
	SlippyZoomLevel6 SlippyZoomLevelT = 6
	// SlippyZoomLevel9 represents, eg. a wide area, large metropolitan area
	SlippyZoomLevel9 SlippyZoomLevelT = 9
	// SlippyZoomLevel12 represents, eg. a town, or city district
	SlippyZoomLevel12 SlippyZoomLevelT = 12
	// SlippyZoomLevel15 represents, eg. a small road
	SlippyZoomLevel15 SlippyZoomLevelT = 15
	// SlippyZoomLevel18 represents, eg. some buildings, trees
	SlippyZoomLevel18 SlippyZoomLevelT = 18
	SlippyZoomLevel20 SlippyZoomLevelT = 20
)

// MaxSlippyZoomLevel is the deepest level tile servers commonly render.
const MaxSlippyZoomLevel = 22

// Valid reports whether z is a usable zoom level.
func (z SlippyZoomLevelT) Valid() bool {
	return z >= 0 && z <= MaxSlippyZoomLevel
}
