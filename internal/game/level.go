package game

import (
	"errors"
	"fmt"

	"github.com/Garsondee/Ballistic-Sense/internal/ballistics"
)

// ErrBadLevel is returned by ParseLevel for malformed level text.
var ErrBadLevel = errors.New("bad level")

// levelLegend maps level characters to cell materials. Spawn markers sit on
// grass.
var levelLegend = map[rune]ballistics.Material{
	'.': ballistics.MaterialGrass,
	'#': ballistics.MaterialWall,
	'_': ballistics.MaterialFloor,
	'd': ballistics.MaterialDirt,
	'=': ballistics.MaterialAsphalt,
	's': ballistics.MaterialSand,
	'C': ballistics.MaterialConcrete,
	'w': ballistics.MaterialWoodFloor,
	'?': ballistics.MaterialMissing,
	'P': ballistics.MaterialGrass,
	'E': ballistics.MaterialGrass,
}

// demoLevel is the sandbox map: a walled yard with a two-room block, a road,
// concrete cover and a wooden hut with a solid core.
var demoLevel = []string{
	"########################################",
	"#......................................#",
	"#..P............####..####.............#",
	"#...............#________#.....E.......#",
	"#....CCCC.......#________#.............#",
	"#....CCCC.......#___E____#....wwwwww...#",
	"#...............#________#....ww##ww...#",
	"#........ssss...####..####....ww##ww...#",
	"#........ssss.................wwwwww...#",
	"#======================================#",
	"#======================================#",
	"#......................................#",
	"#....dddd.........CCCC.................#",
	"#....dddd.........CCCC.........E.......#",
	"#.................................##...#",
	"#.......###.###...................##...#",
	"#.......#_____#........................#",
	"#.......#__E__#.........sssss..........#",
	"#.......#_____#.........sssss..........#",
	"#.......#######........................#",
	"#......................................#",
	"#..........................CC..........#",
	"#..........................CC......E...#",
	"########################################",
}

// Level is a parsed map: the grid plus spawn points in world units.
type Level struct {
	Grid        *ballistics.Grid
	PlayerSpawn ballistics.Vec2
	EnemySpawns []ballistics.Vec2
}

// ParseLevel builds a Level from rows of legend characters. Every row must
// have the same width and exactly one 'P' must be present. Enemies are
// listed in reading order.
func ParseLevel(rows []string) (*Level, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadLevel)
	}
	width := len([]rune(rows[0]))
	ids := make([]uint8, 0, width*len(rows))
	lvl := &Level{}
	players := 0
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d: %w",
				ErrBadLevel, y, len(runes), width, ballistics.ErrRaggedGrid)
		}
		for x, r := range runes {
			m, ok := levelLegend[r]
			if !ok {
				return nil, fmt.Errorf("%w: unknown cell %q at (%d,%d)", ErrBadLevel, r, x, y)
			}
			switch r {
			case 'P':
				players++
				lvl.PlayerSpawn = ballistics.CellCenter(x, y)
			case 'E':
				lvl.EnemySpawns = append(lvl.EnemySpawns, ballistics.CellCenter(x, y))
			}
			ids = append(ids, uint8(m))
		}
	}
	if players != 1 {
		return nil, fmt.Errorf("%w: want one player spawn, found %d", ErrBadLevel, players)
	}
	grid, err := ballistics.NewGridFromIDs(width, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadLevel, err)
	}
	lvl.Grid = grid
	return lvl, nil
}

// NewWorld populates a fresh world from the level. The player is armed with
// the first weapon in the table and enemies face the player spawn.
func (l *Level) NewWorld(seed int64, log *ballistics.SimLog) *ballistics.World {
	player := ballistics.NewActor(l.PlayerSpawn).WithWeapon(&ballistics.WeaponTable[0])
	w := ballistics.NewWorld(l.Grid.Clone(), nil, player, ballistics.DefaultSimConfig(), seed, log)
	for i, pos := range l.EnemySpawns {
		rot := ballistics.AngleFromVec(l.PlayerSpawn.Sub(pos))
		w.AddEnemy(ballistics.NewEnemy(fmt.Sprintf("E%d", i+1), pos, rot))
	}
	return w
}
