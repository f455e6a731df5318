package testdata

const data = `{
	"page_duration": 2,
	"page_shift": 0,
	"notes": [
		{"id": 1, "type": "single", "time": 1.0, "x": 0.1},
		{"id": 2, "type": "flick", "time": 1.5, "x": 0.9},
		{"id": 3, "type": "chain-head", "time": 2.0, "x": 0.2, "next_id": 4},
		{"id": 4, "type": "chain-child", "time": 2.05, "x": 0.3, "next_id": 5},
		{"id": 5, "type": "chain-child", "time": 2.1, "x": 0.4},
		{"id": 6, "type": "hold", "time": 3.0, "duration": 1.0, "x": 0.5},
		{"id": 7, "type": "long-hold", "time": 4.5, "duration": 3.0, "x": 0.5},
		{"id": 8, "type": "single", "time": 8.0, "x": 0.7}
	]
}`

// A clean play of data, the chain is dragged from its head
const events = `[
	{"note": 1, "kind": "down", "time": 1.0},
	{"note": 2, "kind": "down", "time": 1.51},
	{"note": 3, "kind": "down", "time": 2.0},
	{"note": 6, "kind": "down", "time": 3.0},
	{"note": 6, "kind": "up", "time": 4.0},
	{"note": 7, "kind": "down", "time": 4.5},
	{"note": 8, "kind": "down", "time": 8.02}
]`
