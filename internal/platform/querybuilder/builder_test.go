package querybuilder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder_Placeholders(t *testing.T) {
	tests := []struct {
		name  string
		style Placeholder
		want  string
	}{
		{
			name:  "dollar",
			style: Dollar,
			want:  "SELECT id, team_url FROM team_details_cache WHERE id = $1 AND data IS NOT NULL AND team_url = $2 ORDER BY updated_at DESC, id DESC LIMIT 10",
		},
		{
			name:  "question",
			style: Question,
			want:  "SELECT id, team_url FROM team_details_cache WHERE id = ? AND data IS NOT NULL AND team_url = ? ORDER BY updated_at DESC, id DESC LIMIT 10",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, args, err := Select("id", "team_url").
				Placeholders(tc.style).
				From("team_details_cache").
				Where(Eq("id", int64(7)), NotNull("data"), Eq("team_url", "https://x")).
				OrderBy("updated_at DESC", "id DESC").
				Limit(10).
				ToSQL()
			require.NoError(t, err)
			assert.Equal(t, tc.want, query)
			assert.Equal(t, []any{int64(7), "https://x"}, args)
		})
	}
}

func TestSelectBuilder_In(t *testing.T) {
	query, args, err := Select("*").From("team_details_cache").Where(In("id", []int64{3, 5})).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM team_details_cache WHERE id IN ($1, $2)", query)
	assert.Equal(t, []any{int64(3), int64(5)}, args)

	query, args, err = Select("*").From("team_details_cache").Where(In("id", []int64{})).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM team_details_cache WHERE 1=0", query)
	assert.Empty(t, args)
}

func TestSelectBuilder_Validation(t *testing.T) {
	_, _, err := Select().From("t").ToSQL()
	assert.ErrorContains(t, err, "columns")

	_, _, err = Select("id").ToSQL()
	assert.ErrorContains(t, err, "table")
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("team_details_cache").
		Placeholders(Question).
		Columns("team_url", "data").
		Values("https://a", "{}").
		Values("https://b", "[]").
		Suffix(" ON CONFLICT (team_url) DO NOTHING ").
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO team_details_cache (team_url, data) VALUES (?, ?), (?, ?) ON CONFLICT (team_url) DO NOTHING", query)
	assert.Equal(t, []any{"https://a", "{}", "https://b", "[]"}, args)
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	assert.ErrorContains(t, err, "row 0 has 1 values")

	_, _, err = InsertInto("t").Columns("a").ToSQL()
	assert.ErrorContains(t, err, "values are required")
}

func TestAppendModels(t *testing.T) {
	type Audit struct {
		UpdatedAt time.Time `db:"updated_at"`
	}
	type row struct {
		Audit
		URL      string `db:"team_url,omitempty"`
		Data     string `db:"data"`
		Ignored  string `db:"-"`
		Untagged string
		hidden   string
	}

	at := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	b := InsertInto("team_details_cache")
	require.NoError(t, AppendModels(b, []row{
		{Audit: Audit{UpdatedAt: at}, URL: "a", Data: "{}", hidden: "x"},
		{Audit: Audit{UpdatedAt: at}, URL: "b", Data: "[]"},
	}))

	query, args, err := b.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO team_details_cache (updated_at, team_url, data) VALUES ($1, $2, $3), ($4, $5, $6)", query)
	assert.Equal(t, []any{at, "a", "{}", at, "b", "[]"}, args)
}

func TestAppendModels_Invalid(t *testing.T) {
	type empty struct {
		Name string
	}

	assert.Error(t, AppendModels[empty](InsertInto("t"), nil))
	assert.ErrorContains(t, AppendModels(InsertInto("t"), []empty{{Name: "x"}}), "no db columns")
	assert.ErrorContains(t, AppendModels(InsertInto("t"), []int{1}), "must be a struct")

	var nilRow *empty
	assert.ErrorContains(t, AppendModels(InsertInto("t"), []*empty{nilRow}), "cannot be nil")
}

func TestPlaceholderFor(t *testing.T) {
	assert.Equal(t, Question, PlaceholderFor("sqlite"))
	assert.Equal(t, Question, PlaceholderFor("SQLite3"))
	assert.Equal(t, Dollar, PlaceholderFor("postgres"))
	assert.Equal(t, Dollar, PlaceholderFor(""))
}
