package memory

import (
	"time"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/competition"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/player"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/team"
)

const (
	CompetitionIDCampusLeague = "fupre-campus-league-2025"
	CompetitionIDUnityCup     = "fupre-unity-cup-2025"
)

func SeedCompetitions() []competition.Competition {
	return []competition.Competition{
		{
			ID:     CompetitionIDCampusLeague,
			Name:   "FUPRE Campus League",
			Sport:  fixture.SportFootball,
			Season: "2025/2026",
			Type:   competition.TypeLeague,
		},
		{
			ID:     CompetitionIDUnityCup,
			Name:   "FUPRE Unity Cup",
			Sport:  fixture.SportFootball,
			Season: "2025/2026",
			Type:   competition.TypeHybrid,
			Groups: []competition.Group{
				{Name: "Group A", FixtureIDs: []string{"cup-fix-001"}},
				{Name: "Group B", FixtureIDs: []string{"cup-fix-002"}},
			},
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "fupre-mech", Name: "Mechanical Marines", ShortName: "MEC"},
		{ID: "fupre-elect", Name: "Electrical Eagles", ShortName: "ELE"},
		{ID: "fupre-petro", Name: "Petroleum Pirates", ShortName: "PET"},
		{ID: "fupre-marine", Name: "Marine Sharks", ShortName: "MAR"},
		{ID: "fupre-enviro", Name: "Environmental Falcons", ShortName: "ENV"},
		{ID: "fupre-chem", Name: "Chemical Chiefs", ShortName: "CHM"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "mech-gk-01", TeamID: "fupre-mech", Name: "Efe Akpofure", Position: player.PositionGoalkeeper},
		{ID: "mech-def-01", TeamID: "fupre-mech", Name: "Oghenero Umukoro", Position: player.PositionDefender},
		{ID: "mech-def-02", TeamID: "fupre-mech", Name: "Tega Ofotokun", Position: player.PositionDefender},
		{ID: "mech-mid-01", TeamID: "fupre-mech", Name: "Kelvin Eyetan", Position: player.PositionMidfielder},
		{ID: "mech-mid-02", TeamID: "fupre-mech", Name: "Jonathan Oboh", Position: player.PositionMidfielder},
		{ID: "mech-fwd-01", TeamID: "fupre-mech", Name: "Lucky Isoja", Position: player.PositionForward},
		{ID: "mech-fwd-02", TeamID: "fupre-mech", Name: "Emeka Nwachukwu", Position: player.PositionForward},
		{ID: "elect-gk-01", TeamID: "fupre-elect", Name: "Sani Abubakar", Position: player.PositionGoalkeeper},
		{ID: "elect-def-01", TeamID: "fupre-elect", Name: "Ovie Ejaife", Position: player.PositionDefender},
		{ID: "elect-def-02", TeamID: "fupre-elect", Name: "Daniel Akpan", Position: player.PositionDefender},
		{ID: "elect-mid-01", TeamID: "fupre-elect", Name: "Chisom Okeke", Position: player.PositionMidfielder},
		{ID: "elect-mid-02", TeamID: "fupre-elect", Name: "Ese Oghoghorie", Position: player.PositionMidfielder},
		{ID: "elect-fwd-01", TeamID: "fupre-elect", Name: "Ibrahim Yusuf", Position: player.PositionForward},
		{ID: "elect-fwd-02", TeamID: "fupre-elect", Name: "Festus Omonigho", Position: player.PositionForward},
		{ID: "petro-gk-01", TeamID: "fupre-petro", Name: "Godwin Etim", Position: player.PositionGoalkeeper},
		{ID: "petro-def-01", TeamID: "fupre-petro", Name: "Augustine Chucks", Position: player.PositionDefender},
		{ID: "petro-mid-01", TeamID: "fupre-petro", Name: "Samuel Edafe", Position: player.PositionMidfielder},
		{ID: "petro-fwd-01", TeamID: "fupre-petro", Name: "Victor Osagie", Position: player.PositionForward},
		{ID: "marine-gk-01", TeamID: "fupre-marine", Name: "Peter Ovwata", Position: player.PositionGoalkeeper},
		{ID: "marine-def-01", TeamID: "fupre-marine", Name: "Henry Idudhe", Position: player.PositionDefender},
		{ID: "marine-mid-01", TeamID: "fupre-marine", Name: "Collins Agbogun", Position: player.PositionMidfielder},
		{ID: "marine-fwd-01", TeamID: "fupre-marine", Name: "Timi Pere", Position: player.PositionForward},
	}
}

func SeedFixtures() []fixture.Fixture {
	kickoff := time.Date(2026, 2, 7, 16, 0, 0, 0, time.UTC)
	return []fixture.Fixture{
		{
			ID:            "league-fix-001",
			CompetitionID: CompetitionIDCampusLeague,
			Season:        "2025/2026",
			Sport:         fixture.SportFootball,
			HomeTeamID:    "fupre-mech",
			AwayTeamID:    "fupre-elect",
			KickoffAt:     kickoff,
			Venue:         "FUPRE Main Bowl",
			Status:        fixture.StatusScheduled,
			Lineups: fixture.Lineups{
				Home: fixture.Lineup{
					TeamID:      "fupre-mech",
					Formation:   "3-2-1",
					StartingXI:  []string{"mech-gk-01", "mech-def-01", "mech-def-02", "mech-mid-01", "mech-mid-02", "mech-fwd-01", "mech-fwd-02"},
					Substitutes: []string{},
				},
				Away: fixture.Lineup{
					TeamID:      "fupre-elect",
					Formation:   "3-2-1",
					StartingXI:  []string{"elect-gk-01", "elect-def-01", "elect-def-02", "elect-mid-01", "elect-mid-02", "elect-fwd-01", "elect-fwd-02"},
					Substitutes: []string{},
				},
			},
		},
		{
			ID:            "cup-fix-001",
			CompetitionID: CompetitionIDUnityCup,
			Season:        "2025/2026",
			Sport:         fixture.SportFootball,
			HomeTeamID:    "fupre-petro",
			AwayTeamID:    "fupre-marine",
			KickoffAt:     kickoff.Add(48 * time.Hour),
			Venue:         "FUPRE Main Bowl",
			Status:        fixture.StatusScheduled,
		},
		{
			ID:            "cup-fix-002",
			CompetitionID: CompetitionIDUnityCup,
			Season:        "2025/2026",
			Sport:         fixture.SportFootball,
			HomeTeamID:    "fupre-enviro",
			AwayTeamID:    "fupre-chem",
			KickoffAt:     kickoff.Add(72 * time.Hour),
			Venue:         "FUPRE Mini Stadium",
			Status:        fixture.StatusScheduled,
		},
	}
}
