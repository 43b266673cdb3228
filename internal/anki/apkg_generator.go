package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/ankiforge/internal"
)

// apkgGenerator creates Anki package files (.apkg): a zip containing a
// collection.anki2 SQLite database and a media manifest. The deck is
// text-only, so the manifest is always empty.
type apkgGenerator struct {
	options *GeneratorOptions
	deckID  int64
	modelID int64
	cards   []Card
}

func newAPKGGenerator(options *GeneratorOptions) *apkgGenerator {
	// IDs based on timestamp to ensure uniqueness across generated decks
	now := time.Now().UnixMilli()
	return &apkgGenerator{
		options: options,
		deckID:  now,
		modelID: now + 1,
		cards:   make([]Card, 0),
	}
}

func (g *apkgGenerator) addCard(card Card) {
	g.cards = append(g.cards, card)
}

// write builds the package in a temp directory and zips it to outputPath
func (g *apkgGenerator) write(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "ankiforge_export_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Empty media manifest; the package carries no audio or images
	if err := os.WriteFile(filepath.Join(tempDir, "media"), []byte("{}"), 0644); err != nil {
		return fmt.Errorf("failed to create media manifest: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := g.createZipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	return nil
}

// createDatabase creates the Anki SQLite database
func (g *apkgGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := g.createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}

	if err := g.insertNotesAndCards(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return nil
}

// createTables creates the required Anki database tables
func (g *apkgGenerator) createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY,
			crt integer NOT NULL,
			mod integer NOT NULL,
			scm integer NOT NULL,
			ver integer NOT NULL,
			dty integer NOT NULL,
			usn integer NOT NULL,
			ls integer NOT NULL,
			conf text NOT NULL,
			models text NOT NULL,
			decks text NOT NULL,
			dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY,
			guid text NOT NULL,
			mid integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			tags text NOT NULL,
			flds text NOT NULL,
			sfld text NOT NULL,
			csum integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY,
			nid integer NOT NULL,
			did integer NOT NULL,
			ord integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			type integer NOT NULL,
			queue integer NOT NULL,
			due integer NOT NULL,
			ivl integer NOT NULL,
			factor integer NOT NULL,
			reps integer NOT NULL,
			lapses integer NOT NULL,
			left integer NOT NULL,
			odue integer NOT NULL,
			odid integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE revlog (
			id integer PRIMARY KEY,
			cid integer NOT NULL,
			usn integer NOT NULL,
			ease integer NOT NULL,
			ivl integer NOT NULL,
			lastIvl integer NOT NULL,
			factor integer NOT NULL,
			time integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE TABLE graves (
			usn integer NOT NULL,
			oid integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE INDEX ix_notes_csum ON notes (csum)`,
		`CREATE INDEX ix_notes_usn ON notes (usn)`,
		`CREATE INDEX ix_cards_usn ON cards (usn)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
		`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
		`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
		`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// insertCollection inserts the collection metadata
func (g *apkgGenerator) insertCollection(db *sql.DB) error {
	now := time.Now().Unix()

	decks := map[string]interface{}{
		"1": map[string]interface{}{
			"id":               1,
			"name":             "Default",
			"mod":              now,
			"desc":             "",
			"collapsed":        false,
			"dyn":              0,
			"conf":             1,
			"usn":              0,
			"newToday":         []int{0, 0},
			"revToday":         []int{0, 0},
			"lrnToday":         []int{0, 0},
			"timeToday":        []int{0, 0},
			"browserCollapsed": false,
			"extendNew":        10,
			"extendRev":        50,
		},
		fmt.Sprintf("%d", g.deckID): map[string]interface{}{
			"id":               g.deckID,
			"name":             g.options.DeckName,
			"mod":              now,
			"desc":             fmt.Sprintf("%s vocabulary deck created by ankiforge", g.options.SourceLanguage),
			"collapsed":        false,
			"dyn":              0,
			"conf":             1,
			"usn":              0,
			"newToday":         []int{0, 0},
			"revToday":         []int{0, 0},
			"lrnToday":         []int{0, 0},
			"timeToday":        []int{0, 0},
			"browserCollapsed": false,
			"extendNew":        10,
			"extendRev":        50,
		},
	}
	decksJSON, _ := json.Marshal(decks)

	models := map[string]interface{}{
		fmt.Sprintf("%d", g.modelID): g.createNoteTypeConfig(),
	}
	modelsJSON, _ := json.Marshal(models)

	conf := map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      fmt.Sprintf("%d", g.modelID),
		"dayLearnFirst": false,
	}
	confJSON, _ := json.Marshal(conf)

	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	}
	dconfJSON, _ := json.Marshal(dconf)

	query := `INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(query,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver (schema version)
		0,        // dty
		0,        // usn
		0,        // ls
		string(confJSON),
		string(modelsJSON),
		string(decksJSON),
		string(dconfJSON),
		"{}", // tags
	)
	return err
}

// createNoteTypeConfig creates the note type configuration. Field names
// carry the configured language names, so cards read naturally in the
// Anki browser.
func (g *apkgGenerator) createNoteTypeConfig() map[string]interface{} {
	src := g.options.SourceLanguage
	tgt := g.options.TargetLanguage

	return map[string]interface{}{
		"id":    g.modelID,
		"name":  fmt.Sprintf("%s-%s (ankiforge)", src, tgt),
		"type":  0,
		"mod":   time.Now().Unix(),
		"usn":   -1,
		"sortf": 0,
		"did":   g.deckID,
		"req":   [][]interface{}{{0, "all", []int{0}}, {1, "all", []int{1}}},
		"vers":  []int{},
		"tags":  []string{},
		"latexPre": `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`,
		"latexPost": `\end{document}`,
		"flds": []map[string]interface{}{
			{
				"name":   src,
				"ord":    0,
				"sticky": false,
				"rtl":    false,
				"font":   "Arial",
				"size":   20,
				"media":  []string{},
			},
			{
				"name":   tgt,
				"ord":    1,
				"sticky": false,
				"rtl":    false,
				"font":   "Arial",
				"size":   20,
				"media":  []string{},
			},
			{
				"name":   fmt.Sprintf("Example%s", sanitizeFieldName(src)),
				"ord":    2,
				"sticky": false,
				"rtl":    false,
				"font":   "Arial",
				"size":   16,
				"media":  []string{},
			},
			{
				"name":   fmt.Sprintf("Example%s", sanitizeFieldName(tgt)),
				"ord":    3,
				"sticky": false,
				"rtl":    false,
				"font":   "Arial",
				"size":   16,
				"media":  []string{},
			},
		},
		"tmpls": []map[string]interface{}{
			{
				"name":  "Forward",
				"ord":   0,
				"qfmt":  g.frontTemplate(),
				"afmt":  g.backTemplate(),
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
			{
				"name":  "Reverse",
				"ord":   1,
				"qfmt":  g.reverseFrontTemplate(),
				"afmt":  g.reverseBackTemplate(),
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
		},
		"css": g.css(),
	}
}

// frontTemplate shows the source word and its example sentence
func (g *apkgGenerator) frontTemplate() string {
	src := sanitizeFieldName(g.options.SourceLanguage)
	return fmt.Sprintf(`<div class="front">
<div class="word">{{%s}}</div>
{{#Example%s}}
<div class="example"><i>"{{Example%s}}"</i></div>
{{/Example%s}}
</div>`, g.options.SourceLanguage, src, src, src)
}

// backTemplate adds the translation and translated example
func (g *apkgGenerator) backTemplate() string {
	tgt := sanitizeFieldName(g.options.TargetLanguage)
	return fmt.Sprintf(`{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="translation">{{%s}}</div>
{{#Example%s}}
<div class="example"><i>"{{Example%s}}"</i></div>
{{/Example%s}}
</div>`, g.options.TargetLanguage, tgt, tgt, tgt)
}

// reverseFrontTemplate shows the translation side first
func (g *apkgGenerator) reverseFrontTemplate() string {
	tgt := sanitizeFieldName(g.options.TargetLanguage)
	return fmt.Sprintf(`<div class="front">
<div class="translation">{{%s}}</div>
{{#Example%s}}
<div class="example"><i>"{{Example%s}}"</i></div>
{{/Example%s}}
</div>`, g.options.TargetLanguage, tgt, tgt, tgt)
}

// reverseBackTemplate answers with the source word and example
func (g *apkgGenerator) reverseBackTemplate() string {
	src := sanitizeFieldName(g.options.SourceLanguage)
	return fmt.Sprintf(`{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="word">{{%s}}</div>
{{#Example%s}}
<div class="example"><i>"{{Example%s}}"</i></div>
{{/Example%s}}
</div>`, g.options.SourceLanguage, src, src, src)
}

// css returns the card styling
func (g *apkgGenerator) css() string {
	return `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #333;
  background-color: white;
}

.front, .back {
  padding: 20px;
}

.word {
  font-size: 32px;
  font-weight: bold;
  color: #c0392b;
  margin: 20px 0;
}

.translation {
  font-size: 28px;
  font-weight: bold;
  color: #2c3e50;
  margin: 20px 0;
}

.example {
  font-size: 18px;
  color: #7f8c8d;
  margin-top: 20px;
}

hr#answer {
  margin: 30px 0;
  border: 0;
  border-top: 1px solid #ecf0f1;
}`
}

// insertNotesAndCards inserts all notes and cards into the database.
// Note order follows card insertion order, which equals input word order.
func (g *apkgGenerator) insertNotesAndCards(db *sql.DB) error {
	now := time.Now()

	for i, card := range g.cards {
		// Unique IDs, leaving space for 2 cards per note
		noteID := now.UnixMilli() + int64(i*3)
		cardID1 := noteID + 1
		cardID2 := noteID + 2

		// Join fields with field separator (ASCII 31)
		fields := strings.Join([]string{
			card.Word,
			card.Translation,
			card.Example,
			card.ExampleTranslation,
		}, "\x1f")

		guid := internal.NoteGUID(g.options.DeckName, card.Word)

		noteQuery := `INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := db.Exec(noteQuery,
			noteID,     // id
			guid,       // guid
			g.modelID,  // mid
			now.Unix(), // mod
			-1,         // usn
			"",         // tags
			fields,     // flds
			card.Word,  // sfld (sort field)
			0,          // csum
			0,          // flags
			"",         // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		cardQuery := `INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		// Forward card
		_, err = db.Exec(cardQuery,
			cardID1,    // id
			noteID,     // nid
			g.deckID,   // did
			0,          // ord (template 0)
			now.Unix(), // mod
			-1,         // usn
			0,          // type (0=new)
			0,          // queue (0=new)
			noteID,     // due (for new cards, this is position)
			0,          // ivl
			0,          // factor
			0,          // reps
			0,          // lapses
			0,          // left
			0,          // odue
			0,          // odid
			0,          // flags
			"",         // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert forward card: %w", err)
		}

		// Reverse card
		_, err = db.Exec(cardQuery,
			cardID2,    // id
			noteID,     // nid
			g.deckID,   // did
			1,          // ord (template 1)
			now.Unix(), // mod
			-1,         // usn
			0,          // type (0=new)
			0,          // queue (0=new)
			noteID+1,   // due (position, must be unique)
			0,          // ivl
			0,          // factor
			0,          // reps
			0,          // lapses
			0,          // left
			0,          // odue
			0,          // odid
			0,          // flags
			"",         // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert reverse card: %w", err)
		}
	}

	return nil
}

// createZipPackage creates the final .apkg zip file
func (g *apkgGenerator) createZipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)
	defer archive.Close()

	return filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(tempDir, path)
		if err != nil {
			return err
		}

		writer, err := archive.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
}

// sanitizeFieldName strips spaces from a language name so it can appear
// inside an Anki template field reference
func sanitizeFieldName(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
