package scraper

import (
	"testing"

	"github.com/dartcorner/liveboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groupFixture = `
<div class="rr_table_container">
  <div class="rr_memo">Tarcza 4</div>
  <div class="rr_table">
    <div class="rr_body">
      <div class="rr_player">
        <div class="rr_name" tpid="p_alice"><span class="entry_name">Alicja Kowalska</span></div>
        <div class="rr_rank">1</div>
        <div class="rr_win">2 - 0</div>
        <div class="rr_leg">4 - 1</div>
        <div class="t_avg">(52.10)</div>
        <div class="rr_result rr_none"></div>
        <div class="rr_result fix_game" subtitle="Grupa A"><span class="rr_idx">1</span>3 - 1<span class="r_avg">(45.50)</span></div>
        <div class="rr_result" style="background: yellow">1 - 0</div>
      </div>
      <div class="rr_player">
        <div class="rr_name" tpid="p_bob"><span class="entry_name">Robert Nowak</span></div>
        <div class="rr_rank">2</div>
        <div class="rr_win">0 - 1</div>
        <div class="rr_leg">1 - 3</div>
        <div class="t_avg">(41.30)</div>
        <div class="rr_result fix_game"><span class="rr_idx">1</span>1 - 3</div>
        <div class="rr_result rr_none"></div>
        <div class="rr_result">0 - 0</div>
      </div>
      <div class="rr_player">
        <div class="rr_name"><span class="entry_name">Celina Wojcik</span></div>
        <div class="rr_rank">3</div>
        <div class="rr_win">0 - 1</div>
        <div class="rr_leg">0 - 1</div>
        <div class="t_avg"></div>
        <div class="rr_result">0 - 1</div>
        <div class="rr_result">0 - 0</div>
        <div class="rr_result rr_none"></div>
      </div>
    </div>
  </div>
</div>`

func TestParseGroups(t *testing.T) {
	doc := docFromHTML(t, groupFixture)
	groups := ParseGroups(doc, true)

	require.Len(t, groups, 1)
	g := groups[0].Group

	assert.Equal(t, 1, g.GroupNumber)
	assert.Equal(t, "Grupa A", g.Name)
	require.NotNil(t, g.MemoText)
	assert.Equal(t, "Tarcza 4", *g.MemoText)
	require.NotNil(t, g.StationNumber)
	assert.Equal(t, 4, *g.StationNumber)

	require.Len(t, g.Players, 3)
	alice := g.Players[0]
	assert.Equal(t, "Alicja Kowalska", alice.Name)
	assert.Equal(t, 1, alice.Position)
	require.NotNil(t, alice.ExternalID)
	assert.Equal(t, "p_alice", *alice.ExternalID)
	assert.Equal(t, 2, alice.Wins)
	assert.Equal(t, 0, alice.Losses)
	assert.Equal(t, 4, alice.LegsWon)
	assert.Equal(t, 1, alice.LegsLost)
	require.NotNil(t, alice.Average)
	assert.InDelta(t, 52.10, *alice.Average, 0.001)

	carol := g.Players[2]
	assert.Nil(t, carol.ExternalID)
	assert.Nil(t, carol.Average)

	// 3 players yield 3 pairwise matches.
	assert.Equal(t, 3, g.TotalMatches)
	assert.Equal(t, 1, g.CompletedMatches)
	assert.Equal(t, models.GroupStatusActive, g.Status)
}

func TestParseGroupMatches(t *testing.T) {
	doc := docFromHTML(t, groupFixture)
	groups := ParseGroups(doc, true)
	require.Len(t, groups, 1)

	matches := groups[0].Matches
	require.Len(t, matches, 3)

	finished := matches[0]
	assert.Equal(t, "Alicja Kowalska", finished.Player1Name)
	assert.Equal(t, "Robert Nowak", finished.Player2Name)
	assert.Equal(t, 1, finished.MatchOrder)
	assert.Equal(t, 3, finished.Player1Score)
	assert.Equal(t, 1, finished.Player2Score)
	assert.Equal(t, models.MatchStatusFinished, finished.Status)
	require.NotNil(t, finished.Average)
	assert.InDelta(t, 45.50, *finished.Average, 0.001)

	active := matches[1]
	assert.Equal(t, "Alicja Kowalska", active.Player1Name)
	assert.Equal(t, "Celina Wojcik", active.Player2Name)
	assert.Equal(t, models.MatchStatusActive, active.Status)
	// No explicit order index: falls back to the first unused order.
	assert.Equal(t, 2, active.MatchOrder)

	pending := matches[2]
	assert.Equal(t, "Robert Nowak", pending.Player1Name)
	assert.Equal(t, "Celina Wojcik", pending.Player2Name)
	assert.Equal(t, models.MatchStatusPending, pending.Status)
	assert.Equal(t, 3, pending.MatchOrder)
}

func TestParseGroupsRefereeAssignment(t *testing.T) {
	t.Run("steel gets referees", func(t *testing.T) {
		groups := ParseGroups(docFromHTML(t, groupFixture), true)
		require.Len(t, groups, 1)
		matches := groups[0].Matches
		require.Len(t, matches, 3)

		// In a 3-player group the sitting player always calls.
		require.NotNil(t, matches[0].Referee)
		assert.Equal(t, "Celina Wojcik", *matches[0].Referee)
		require.NotNil(t, matches[1].Referee)
		assert.Equal(t, "Robert Nowak", *matches[1].Referee)
		require.NotNil(t, matches[2].Referee)
		assert.Equal(t, "Alicja Kowalska", *matches[2].Referee)
	})

	t.Run("soft gets none", func(t *testing.T) {
		groups := ParseGroups(docFromHTML(t, groupFixture), false)
		require.Len(t, groups, 1)
		for _, m := range groups[0].Matches {
			assert.Nil(t, m.Referee)
		}
	})
}

func TestParseGroupsDuplicateOrderCollapses(t *testing.T) {
	// Two cells in the same row claiming the same explicit order index keep
	// only the first.
	html := `
<div class="rr_table_container">
  <div class="rr_table">
    <div class="rr_body">
      <div class="rr_player">
        <div class="rr_name"><span class="entry_name">Adam</span></div>
        <div class="rr_result rr_none"></div>
        <div class="rr_result"><span class="rr_idx">1</span>2 - 0</div>
        <div class="rr_result"><span class="rr_idx">1</span>1 - 1</div>
      </div>
      <div class="rr_player">
        <div class="rr_name"><span class="entry_name">Beata</span></div>
        <div class="rr_result"></div>
        <div class="rr_result rr_none"></div>
        <div class="rr_result">0 - 0</div>
      </div>
      <div class="rr_player">
        <div class="rr_name"><span class="entry_name">Cezary</span></div>
        <div class="rr_result"></div>
        <div class="rr_result"></div>
        <div class="rr_result rr_none"></div>
      </div>
    </div>
  </div>
</div>`
	groups := ParseGroups(docFromHTML(t, html), false)
	require.Len(t, groups, 1)

	matches := groups[0].Matches
	require.Len(t, matches, 2)
	assert.Equal(t, "Adam", matches[0].Player1Name)
	assert.Equal(t, "Beata", matches[0].Player2Name)
	assert.Equal(t, 1, matches[0].MatchOrder)
	assert.Equal(t, 2, matches[0].Player1Score)
	// The orphaned pairing takes the next free order.
	assert.Equal(t, "Beata", matches[1].Player1Name)
	assert.Equal(t, "Cezary", matches[1].Player2Name)
	assert.Equal(t, 2, matches[1].MatchOrder)
}

func TestParseGroupsNoContainers(t *testing.T) {
	doc := docFromHTML(t, "<div><p>no groups</p></div>")
	assert.Empty(t, ParseGroups(doc, true))
}
