package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/trickplanner/internal/config"
	"github.com/asteroid-belt/trickplanner/internal/models"
	"github.com/asteroid-belt/trickplanner/internal/planner"
	"github.com/asteroid-belt/trickplanner/internal/session"
	"github.com/asteroid-belt/trickplanner/internal/testutil"
)

const (
	testEmail    = "sk8@example.com"
	testPassword = "secret"
)

type testApp struct {
	*app
	out    *bytes.Buffer
	server *testutil.SyncServer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	server := testutil.NewSyncServer(t)
	server.AddUser(testEmail, testPassword)
	return newTestAppWith(t, server, t.TempDir(), config.StorageSQLite)
}

func newTestAppWith(t *testing.T, server *testutil.SyncServer, baseDir, backend string) *testApp {
	t.Helper()
	cfg := testConfig(server, baseDir)
	cfg.Storage.Backend = backend
	return newTestAppFromConfig(t, server, cfg)
}

func testConfig(server *testutil.SyncServer, baseDir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.BaseDir = baseDir
	cfg.Server.URL = server.URL
	cfg.Server.RequestsPerSecond = 1000
	cfg.Sync.Debounce = 20 * time.Millisecond
	cfg.Sync.Poll = 5 * time.Millisecond
	cfg.Sync.ErrorDelay = 50 * time.Millisecond
	return cfg
}

func newTestAppFromConfig(t *testing.T, server *testutil.SyncServer, cfg *config.Config) *testApp {
	t.Helper()
	out := &bytes.Buffer{}
	a, err := newApp(context.Background(), cfg, out)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return &testApp{app: a, out: out, server: server}
}

// output returns what was printed so far and resets the buffer.
func (ta *testApp) output() string {
	s := ta.out.String()
	ta.out.Reset()
	return s
}

func (ta *testApp) trick(t *testing.T, name string) models.Trick {
	t.Helper()
	trick, err := ta.resolveTrick(name)
	require.NoError(t, err)
	return trick
}

func TestNewApp_SeedsSampleData(t *testing.T) {
	ta := newTestApp(t)

	assert.Len(t, ta.store.Tricks(), len(planner.SampleTricks()))
	assert.False(t, ta.session.LoggedIn())
}

func TestNewApp_FileBackend(t *testing.T) {
	server := testutil.NewSyncServer(t)
	dir := t.TempDir()
	ta := newTestAppWith(t, server, dir, config.StorageFile)

	require.NoError(t, ta.addTrick("Tre Flip", "Flips", "hard"))

	_, err := os.Stat(filepath.Join(dir, "data", models.BlobTricks+".json"))
	assert.NoError(t, err)
}

func TestLogin_PullsServerCopy(t *testing.T) {
	ta := newTestApp(t)
	ta.server.SetSnapshot(`{"categories":["Street"],"tricks":[{"id":"2b1f4a56-95c7-4c55-9d1e-6c07a1f0b5a1","name":"Wallie","category":"Street","difficulty":"medium"}],"templates":[],"challenges":[],"trainingPlans":[]}`)

	require.NoError(t, ta.login(testEmail, testPassword))

	assert.True(t, ta.session.LoggedIn())
	tricks := ta.store.Tricks()
	require.Len(t, tricks, 1)
	assert.Equal(t, "Wallie", tricks[0].Name)
	out := ta.output()
	assert.Contains(t, out, "Signed in as "+testEmail)
	assert.Contains(t, out, "Pulled 1 tricks")
	assert.Equal(t, 0, ta.server.PushCount())
}

func TestLogin_WrongPassword(t *testing.T) {
	ta := newTestApp(t)

	err := ta.login(testEmail, "nope")

	require.Error(t, err)
	assert.False(t, ta.session.LoggedIn())
	assert.Equal(t, "auth_error", classifyError(err))
}

func TestRegister_UploadsLocalData(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.register("new@example.com", "pw"))

	assert.True(t, ta.session.LoggedIn())
	pushes := ta.server.Pushes()
	require.Len(t, pushes, 1)
	assert.Contains(t, pushes[0], "Kickflip")
	assert.Contains(t, ta.output(), "Account created for new@example.com")
}

func TestLogout(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.login(testEmail, testPassword))
	ta.output()

	require.NoError(t, ta.logout())

	assert.False(t, ta.session.LoggedIn())
	assert.Contains(t, ta.output(), "Signed out of "+testEmail)
	assert.ErrorIs(t, ta.logout(), session.ErrNotLoggedIn)
}

func TestPullPush_RequireLogin(t *testing.T) {
	ta := newTestApp(t)

	assert.ErrorIs(t, ta.pull(), session.ErrNotLoggedIn)
	assert.ErrorIs(t, ta.push(), session.ErrNotLoggedIn)
	assert.Equal(t, 0, ta.server.FetchCount())
}

func TestPush_SendsCurrentData(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.login(testEmail, testPassword))
	require.NoError(t, ta.addTrick("Impossible", "Flips", "hard"))

	require.NoError(t, ta.push())

	pushes := ta.server.Pushes()
	require.NotEmpty(t, pushes)
	assert.Contains(t, pushes[len(pushes)-1], "Impossible")
}

func TestPull_ReportsCounts(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.login(testEmail, testPassword))
	ta.output()

	require.NoError(t, ta.pull())

	out := ta.output()
	assert.Contains(t, out, "Pulling from "+ta.server.URL)
	assert.Contains(t, out, "0 tricks")
}

func TestClose_FlushesPendingChange(t *testing.T) {
	server := testutil.NewSyncServer(t)
	server.AddUser(testEmail, testPassword)
	cfg := testConfig(server, t.TempDir())
	cfg.Sync.Debounce = time.Hour
	ta := newTestAppFromConfig(t, server, cfg)
	require.NoError(t, ta.login(testEmail, testPassword))

	require.NoError(t, ta.addTrick("Casper", "Manuals", "medium"))
	assert.Equal(t, 0, server.PushCount())
	ta.Close()

	pushes := server.Pushes()
	require.Len(t, pushes, 1)
	assert.Contains(t, pushes[0], "Casper")
}

func TestTrick_AddEditRemove(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.addTrick("Hardflip", "Flips", "medium"))
	assert.Contains(t, ta.output(), "Added Hardflip to Flips")

	name, difficulty := "Hardflip Late", "hard"
	require.NoError(t, ta.editTrick("hardflip", trickEdit{name: &name, difficulty: &difficulty}))
	edited := ta.trick(t, "Hardflip Late")
	assert.Equal(t, "Flips", edited.Category)
	assert.Equal(t, models.DifficultyHard, edited.Difficulty)

	require.NoError(t, ta.removeTricks([]string{"hardflip late", "ollie"}))
	assert.Contains(t, ta.output(), "Removed 2 trick(s)")
	_, err := ta.resolveTrick("Ollie")
	assert.ErrorIs(t, err, planner.ErrTrickNotFound)
}

func TestTrick_AddRejectsBadDifficulty(t *testing.T) {
	ta := newTestApp(t)

	err := ta.addTrick("Hospital Flip", "Flips", "extreme")

	assert.ErrorIs(t, err, planner.ErrInvalidDifficulty)
	assert.Equal(t, "validation_error", classifyError(err))
}

func TestTrick_ListGroupsByCategory(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.listTricks(""))
	out := ta.output()
	assert.Contains(t, out, "Flips")
	assert.Contains(t, out, "Kickflip")
	assert.Contains(t, out, "Boardslide")

	require.NoError(t, ta.listTricks("Grinds"))
	out = ta.output()
	assert.Contains(t, out, "50-50 Grind")
	assert.NotContains(t, out, "Kickflip")
}

func TestResolveTrick_AmbiguousNameNeedsID(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.addTrick("Kickflip", "Manuals", ""))

	_, err := ta.resolveTrick("kickflip")
	assert.ErrorIs(t, err, errAmbiguous)

	for _, trick := range ta.store.Tricks() {
		if trick.Name == "Kickflip" && trick.Category == "Manuals" {
			got, err := ta.resolveTrick(shortID(trick.ID))
			require.NoError(t, err)
			assert.Equal(t, trick.ID, got.ID)
		}
	}
}

func TestResolveTrick_ShortPrefixIsNotFound(t *testing.T) {
	ta := newTestApp(t)
	id := ta.trick(t, "Ollie").ID.String()

	_, err := ta.resolveTrick(id[:minPrefixLen-1])
	assert.ErrorIs(t, err, planner.ErrTrickNotFound)
}

func TestCombo_SaveCreatesChallenge(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.combo(comboOptions{max: "hard", save: true}))

	challenges := ta.store.Challenges()
	require.Len(t, challenges, 1)
	assert.Len(t, challenges[0].Combo, 5)
	assert.Equal(t, models.ChallengeNotDone, challenges[0].Status)
	assert.Contains(t, ta.output(), "Saved as challenge "+shortID(challenges[0].ID))
}

func TestCombo_PicksDrawFromNamedCategories(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.combo(comboOptions{max: "hard", picks: []string{"Flips=2"}, save: true}))

	challenges := ta.store.Challenges()
	require.Len(t, challenges, 1)
	require.Len(t, challenges[0].Combo, 2)
	for _, trick := range challenges[0].Combo {
		assert.Equal(t, "Flips", trick.Category)
	}
}

func TestCombo_NothingEligible(t *testing.T) {
	ta := newTestApp(t)
	for _, trick := range ta.store.Tricks() {
		_, err := ta.store.UpdateTrick(trick.ID, trick.Name, trick.Category, models.DifficultyHard)
		require.NoError(t, err)
	}

	require.NoError(t, ta.combo(comboOptions{max: "easy", save: true}))

	assert.Contains(t, ta.output(), "No tricks match")
	assert.Empty(t, ta.store.Challenges())
}

func TestChallenge_StatusAndRemove(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.combo(comboOptions{max: "hard", save: true}))
	id := ta.store.Challenges()[0].ID

	require.NoError(t, ta.setChallengeStatus(shortID(id), "landed"))
	c, ok := ta.store.Challenge(id)
	require.True(t, ok)
	assert.Equal(t, models.ChallengeSuccess, c.Status)

	ta.challengeStats()
	assert.Contains(t, ta.output(), "100%")

	require.NoError(t, ta.removeChallenges([]string{shortID(id)}, "yesterday"))
	assert.Contains(t, ta.output(), "Removed 0 challenge(s)")
	require.NoError(t, ta.removeChallenges([]string{shortID(id)}, ""))
	assert.Contains(t, ta.output(), "Removed 1 challenge(s)")
	assert.Empty(t, ta.store.Challenges())
}

func TestChallenge_ListByDay(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.combo(comboOptions{max: "hard", save: true, date: "2026-03-01"}))
	ta.output()

	require.NoError(t, ta.listChallenges("2026-03-01"))
	assert.Contains(t, ta.output(), "2026-03-01")

	require.NoError(t, ta.listChallenges("2026-03-02"))
	assert.Contains(t, ta.output(), "No challenges")
}

func TestTrain_AddLogSetRemove(t *testing.T) {
	ta := newTestApp(t)
	today := ta.store.Today()

	require.NoError(t, ta.addTraining("Ollie", 5, today))
	require.NoError(t, ta.logTraining("ollie", 2, today))

	items := ta.store.TrainingItems(today)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].CompletedCount)

	require.NoError(t, ta.setTraining("ollie", 9, today))
	items = ta.store.TrainingItems(today)
	assert.Equal(t, 5, items[0].CompletedCount)

	ta.output()
	ta.showTraining(today)
	out := ta.output()
	assert.Contains(t, out, "Ollie")
	assert.Contains(t, out, "5/5")

	require.NoError(t, ta.logTraining("ollie", -10, today))
	assert.Equal(t, 0, ta.store.TrainingItems(today)[0].CompletedCount)
}

func TestTrain_UnknownItem(t *testing.T) {
	ta := newTestApp(t)

	err := ta.logTraining("Kickflip", 1, ta.store.Today())

	assert.ErrorIs(t, err, planner.ErrTrainingItemNotFound)
	assert.Equal(t, "not_found_error", classifyError(err))
}

func TestTrain_ShowEmptyDay(t *testing.T) {
	ta := newTestApp(t)

	ta.showTraining(ta.store.Today())

	assert.Contains(t, ta.output(), "Nothing planned")
}

func TestTemplate_ApplyIsIdempotent(t *testing.T) {
	ta := newTestApp(t)
	_, err := ta.store.AddTemplate("Warmup")
	require.NoError(t, err)
	require.NoError(t, ta.addTemplateItem("warmup", "Kickflip", 3))
	require.NoError(t, ta.addTemplateItem("warmup", "Manual", 2))
	ta.output()

	require.NoError(t, ta.applyTemplate("Warmup", ""))
	assert.Contains(t, ta.output(), "Applied Warmup")
	require.NoError(t, ta.applyTemplate("Warmup", ""))
	assert.Contains(t, ta.output(), "already part of")

	today := ta.store.Today()
	items := ta.store.TrainingItems(today)
	require.Len(t, items, 2)

	ta.showTraining(today)
	assert.Contains(t, ta.output(), "from Warmup")

	require.NoError(t, ta.unapplyTemplate("warmup", ""))
	assert.Empty(t, ta.store.TrainingItems(today))
	require.NoError(t, ta.unapplyTemplate("warmup", ""))
	assert.Contains(t, ta.output(), "is not part of")
}

func TestTemplate_RenameAndRemoveItem(t *testing.T) {
	ta := newTestApp(t)
	_, err := ta.store.AddTemplate("Flatground")
	require.NoError(t, err)
	require.NoError(t, ta.addTemplateItem("Flatground", "Heelflip", 4))

	require.NoError(t, ta.renameTemplate("flatground", "Flat"))
	tpl, err := ta.resolveTemplate("Flat")
	require.NoError(t, err)
	require.Len(t, tpl.Items, 1)

	require.NoError(t, ta.removeTemplateItem("Flat", "heelflip"))
	tpl, err = ta.resolveTemplate("Flat")
	require.NoError(t, err)
	assert.Empty(t, tpl.Items)

	ta.output()
	ta.listTemplates()
	assert.Contains(t, ta.output(), "(empty)")
}

func TestExportImport_RoundTrip(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.addTrick("Varial Heel", "Flips", "medium"))
	path := filepath.Join(t.TempDir(), "backup.json")

	require.NoError(t, ta.export(path, false))
	assert.Contains(t, ta.output(), "Backup written to "+path)

	require.NoError(t, ta.removeTricks([]string{"Varial Heel"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, ta.importBackup(data, true))

	ta.trick(t, "Varial Heel")
	out := ta.output()
	assert.Contains(t, out, "Imported 7 tricks")
	assert.Contains(t, out, "Sign in to sync")
}

func TestExport_DefaultPathUnderBackups(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.export("", false))

	entries, err := os.ReadDir(config.GetPaths(ta.cfg).Backups)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "trickplanner-"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".json"))
}

func TestExport_Stdout(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.export("-", false))

	_, err := planner.DecodeSnapshot([]byte(ta.output()))
	assert.NoError(t, err)
}

func TestImport_RejectsBrokenBackup(t *testing.T) {
	ta := newTestApp(t)
	before := len(ta.store.Tricks())

	err := ta.importBackup([]byte(`{"tricks":[]}`), true)

	var decodeErr *planner.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.Len(t, ta.store.Tricks(), before)
}

func TestImport_PushesWhenSignedIn(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.login(testEmail, testPassword))
	data, err := planner.EncodeSnapshot(models.Snapshot{
		Categories: []string{"Street"},
		Tricks:     []models.Trick{models.NewTrick("No Comply", "Street", models.DifficultyEasy)},
	})
	require.NoError(t, err)

	require.NoError(t, ta.importBackup(data, true))

	assert.Eventually(t, func() bool {
		for _, p := range ta.server.Pushes() {
			if strings.Contains(p, "No Comply") {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStatus(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.status())
	out := ta.output()
	assert.Contains(t, out, "signed out")
	assert.Contains(t, out, ta.server.URL)
	assert.Contains(t, out, "sqlite")
	assert.Contains(t, out, "never")

	require.NoError(t, ta.login(testEmail, testPassword))
	ta.output()
	require.NoError(t, ta.status())
	assert.Contains(t, ta.output(), testEmail)
}

func TestParseDay(t *testing.T) {
	ta := newTestApp(t)
	today := ta.store.Today()

	tests := []struct {
		in   string
		want time.Time
	}{
		{"", today},
		{"today", today},
		{"Yesterday", today.AddDate(0, 0, -1)},
		{"tomorrow", today.AddDate(0, 0, 1)},
		{"2026-03-01", time.Date(2026, 3, 1, 0, 0, 0, 0, ta.store.Location())},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ta.parseDay(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}

	_, err := ta.parseDay("03/01/2026")
	assert.Error(t, err)
}

func TestStatus_FingerprintMatchesExport(t *testing.T) {
	ta := newTestApp(t)
	fp, err := snapshotFingerprint(ta.store.Snapshot())
	require.NoError(t, err)

	require.NoError(t, ta.export(filepath.Join(t.TempDir(), "backup.json"), false))
	assert.Contains(t, ta.output(), "fingerprint "+fp)

	require.NoError(t, ta.status())
	assert.Contains(t, ta.output(), fp)

	require.NoError(t, ta.addTrick("Pressure Flip", "Flips", "easy"))
	require.NoError(t, ta.status())
	assert.NotContains(t, ta.output(), fp)
}

func TestAgent_PullsUntilCancelled(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.login(testEmail, testPassword))
	ta.output()
	fetches := ta.server.FetchCount()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	ta.ctx = ctx

	require.NoError(t, ta.runAgent(20*time.Millisecond))

	assert.Greater(t, ta.server.FetchCount(), fetches+1)
	out := ta.output()
	assert.Contains(t, out, "Syncing with "+ta.server.URL)
	assert.Contains(t, out, "pulled")
	assert.Contains(t, out, "Stopped.")
}

func TestAgent_RequiresLogin(t *testing.T) {
	ta := newTestApp(t)

	assert.ErrorIs(t, ta.runAgent(time.Second), session.ErrNotLoggedIn)
}

func TestCategory_List(t *testing.T) {
	ta := newTestApp(t)

	ta.listCategories()

	out := ta.output()
	assert.Contains(t, out, "Flips")
	assert.Contains(t, out, "2 tricks")
	assert.Contains(t, out, "Uncategorized")
	assert.Contains(t, out, "0 tricks")
}
