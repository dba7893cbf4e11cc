package game

import (
	"fmt"
	"strings"
)

// SideReport tallies one combatant's shooting.
type SideReport struct {
	Shots       int
	Hits        int // shells (primary or fragment) that struck the opponent
	DamageDealt int
	GroundHits  int
	WallHits    int
	Misses      int // expired or left the playfield
	AmmoUsed    map[AmmoID]int
}

// Accuracy is hits per shot, 0 when nothing was fired.
func (s SideReport) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Shots)
}

// MatchReport aggregates a SimLog into per-side totals and round results.
type MatchReport struct {
	Ticks         int
	Player, Enemy SideReport
	Craters       int
	ClusterSplits int
	Fragments     int
	Victories     int
	Defeats       int
	HighestLevel  int
	EmptyClicks   int
	WindChanges   int
	FirstHitTick  int // -1 when nobody was hit
}

// BuildReport walks every retained entry of sl.
func BuildReport(sl *SimLog) MatchReport {
	r := MatchReport{
		Player:       SideReport{AmmoUsed: map[AmmoID]int{}},
		Enemy:        SideReport{AmmoUsed: map[AmmoID]int{}},
		FirstHitTick: -1,
	}
	side := func(label string) *SideReport {
		if label == "E" {
			return &r.Enemy
		}
		return &r.Player
	}
	for _, e := range sl.Entries() {
		if e.Tick > r.Ticks {
			r.Ticks = e.Tick
		}
		switch e.Category {
		case "shot":
			s := side(e.Side)
			s.Shots++
			if f := strings.Fields(e.Value); len(f) > 0 {
				s.AmmoUsed[AmmoID(f[0])]++
			}
		case "impact":
			s := side(e.Side)
			switch e.Key {
			case "tank":
				s.Hits++
				if r.FirstHitTick < 0 {
					r.FirstHitTick = e.Tick
				}
			case "ground":
				s.GroundHits++
			case "wall":
				s.WallHits++
			case "expired", "offscreen":
				s.Misses++
			}
		case "damage":
			// damage entries are tagged with the victim
			side(victimAttacker(e.Side)).DamageDealt += int(e.NumVal)
		case "terrain":
			if e.Key == "crater" {
				r.Craters++
			}
		case "cluster":
			r.ClusterSplits++
			r.Fragments += int(e.NumVal)
		case "round":
			switch {
			case e.Key == "setup" && int(e.NumVal) > r.HighestLevel:
				r.HighestLevel = int(e.NumVal)
			case e.Key == "end" && strings.HasPrefix(e.Value, "victory"):
				r.Victories++
			case e.Key == "end":
				r.Defeats++
			}
		case "ammo":
			if e.Key == "empty" {
				r.EmptyClicks++
			}
		case "wind":
			r.WindChanges++
		}
	}
	return r
}

func victimAttacker(victim string) string {
	if victim == "P" {
		return "E"
	}
	return "P"
}

// String renders the report in the headless-report line format.
func (r MatchReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ticks=%d highest_level=%d victories=%d defeats=%d first_hit=%d\n",
		r.Ticks, r.HighestLevel, r.Victories, r.Defeats, r.FirstHitTick)
	for _, row := range []struct {
		name string
		s    SideReport
	}{{"player", r.Player}, {"enemy", r.Enemy}} {
		fmt.Fprintf(&sb, "%-6s shots=%d hits=%d acc=%.2f dmg=%d ground=%d wall=%d miss=%d ammo=%s\n",
			row.name, row.s.Shots, row.s.Hits, row.s.Accuracy(), row.s.DamageDealt,
			row.s.GroundHits, row.s.WallHits, row.s.Misses, formatAmmo(row.s.AmmoUsed))
	}
	fmt.Fprintf(&sb, "terrain: craters=%d  cluster: splits=%d fragments=%d  empty_clicks=%d wind_changes=%d\n",
		r.Craters, r.ClusterSplits, r.Fragments, r.EmptyClicks, r.WindChanges)
	return sb.String()
}

func formatAmmo(used map[AmmoID]int) string {
	if len(used) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(used))
	for _, id := range []AmmoID{AmmoNormal, AmmoCluster, AmmoHeavy} {
		if n, ok := used[id]; ok {
			parts = append(parts, fmt.Sprintf("%s:%d", id, n))
		}
	}
	for id, n := range used {
		if id != AmmoNormal && id != AmmoCluster && id != AmmoHeavy {
			parts = append(parts, fmt.Sprintf("%s:%d", id, n))
		}
	}
	return strings.Join(parts, ",")
}
