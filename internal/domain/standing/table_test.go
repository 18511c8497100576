package standing

import "testing"

func TestBuildTable_UsesLatestSnapshotAndRanks(t *testing.T) {
	t.Parallel()

	standings := []Standing{
		{Team: "Alpha", Round: 1, Record: Record{Wins: 1, GoalsFor: 2, GoalsAgainst: 1, Rating: 1516}},
		{Team: "Beta", Round: 1, Record: Record{Losses: 1, GoalsFor: 1, GoalsAgainst: 2, Rating: 1484}},
		{Team: "Gamma", Round: 1, Record: Record{Draws: 1, GoalsFor: 0, GoalsAgainst: 0, Rating: 1500}},
		{Team: "Delta", Round: 1, Record: Record{Draws: 1, GoalsFor: 0, GoalsAgainst: 0, Rating: 1500}},
		{Team: "Beta", Round: 2, Record: Record{Wins: 1, Losses: 1, GoalsFor: 4, GoalsAgainst: 2, Rating: 1500}},
		{Team: "Gamma", Round: 2, Record: Record{Draws: 1, Losses: 1, GoalsFor: 0, GoalsAgainst: 3, Rating: 1484}},
	}

	rows := BuildTable(standings)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	wantOrder := []string{"Beta", "Alpha", "Delta", "Gamma"}
	for i, want := range wantOrder {
		if rows[i].Team != want {
			t.Fatalf("row %d: expected %s, got %+v", i, want, rows[i])
		}
		if rows[i].Position != i+1 {
			t.Fatalf("row %d: expected position %d, got %d", i, i+1, rows[i].Position)
		}
	}

	if rows[0].Played != 2 || rows[0].Points != 3 || rows[0].GoalDifference != 2 {
		t.Fatalf("unexpected leader row: %+v", rows[0])
	}
	if rows[3].GoalDifference != -3 || rows[3].Points != 1 {
		t.Fatalf("unexpected last row: %+v", rows[3])
	}
}

func TestHistory_KeepsReplayOrder(t *testing.T) {
	t.Parallel()

	standings := []Standing{
		{Team: "Alpha", Round: 1},
		{Team: "Beta", Round: 1},
		{Team: "Alpha", Round: 2},
		{Team: "Alpha", Round: 3},
	}

	got := History(standings, "Alpha")
	if len(got) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(got))
	}
	for i, item := range got {
		if item.Round != uint(i+1) {
			t.Fatalf("snapshot %d: expected round %d, got %d", i, i+1, item.Round)
		}
	}

	if got := History(standings, "Nobody"); len(got) != 0 {
		t.Fatalf("expected no snapshots for unknown team, got %d", len(got))
	}
}

func TestLatest_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	standings := []Standing{
		{Team: "Beta", Round: 1},
		{Team: "Alpha", Round: 1},
		{Team: "Beta", Round: 2},
	}

	got := Latest(standings)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Team != "Beta" || got[0].Round != 2 {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[1].Team != "Alpha" || got[1].Round != 1 {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
}
