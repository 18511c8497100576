package season

import "testing"

func TestSeason_Helpers(t *testing.T) {
	t.Parallel()

	s := Season{Fixtures: []Fixture{
		{Round: 2, HomeTeam: "B", AwayTeam: "A", Score: &Score{Home: 1, Away: 0}},
		{Round: 1, HomeTeam: "A", AwayTeam: "C", Score: &Score{Home: 0, Away: 0}},
		{Round: 3, HomeTeam: "C", AwayTeam: "B"},
		{Round: 2, HomeTeam: "C", AwayTeam: "D"},
	}}

	teams := s.Teams()
	want := []string{"B", "A", "C", "D"}
	if len(teams) != len(want) {
		t.Fatalf("expected %d teams, got %v", len(want), teams)
	}
	for i := range want {
		if teams[i] != want[i] {
			t.Fatalf("team %d: expected %s, got %s", i, want[i], teams[i])
		}
	}

	rounds := s.Rounds()
	if len(rounds) != 3 || rounds[0] != 1 || rounds[1] != 2 || rounds[2] != 3 {
		t.Fatalf("unexpected rounds: %v", rounds)
	}

	next, ok := s.NextRound()
	if !ok || next != 2 {
		t.Fatalf("expected next round 2, got %d (ok=%v)", next, ok)
	}

	if got := s.FixturesInRound(2); len(got) != 2 || got[0].HomeTeam != "B" || got[1].HomeTeam != "C" {
		t.Fatalf("unexpected round 2 fixtures: %+v", got)
	}
	if s.PlayedCount() != 2 {
		t.Fatalf("expected 2 played fixtures, got %d", s.PlayedCount())
	}
}

func TestSeason_NextRoundWhenComplete(t *testing.T) {
	t.Parallel()

	s := Season{Fixtures: []Fixture{{Round: 1, HomeTeam: "A", AwayTeam: "B", Score: &Score{}}}}
	if _, ok := s.NextRound(); ok {
		t.Fatalf("expected no next round for a complete season")
	}
}
