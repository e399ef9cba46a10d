package db

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/kigodev/kigo/domain"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// DB is the database struct.
type DB struct {
	db *sql.DB
}

const (
	//Accounts
	sqlCreateAccountsTable = `CREATE TABLE IF NOT EXISTS accounts(
                        id uuid NOT NULL PRIMARY KEY,
                        username varchar(100) UNIQUE NOT NULL,
                        display_name varchar(100),
                        email varchar(255) UNIQUE NOT NULL,
                        password_hash varchar(100) NOT NULL,
                        publickey varchar(1000) UNIQUE,
                        signature text,
                        created_at timestamp default current_timestamp
                        )`
	sqlInsertAccount          = `INSERT INTO accounts(id, username, display_name, email, password_hash, publickey, signature, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	sqlSelectAccountById      = `SELECT id, username, display_name, email, password_hash, publickey, signature, created_at FROM accounts WHERE id = ?`
	sqlSelectAccountByEmail   = `SELECT id, username, display_name, email, password_hash, publickey, signature, created_at FROM accounts WHERE email = ?`
	sqlSelectAccountByPubkey  = `SELECT id, username, display_name, email, password_hash, publickey, signature, created_at FROM accounts WHERE publickey = ?`
	sqlUpdateAccountUsername  = `UPDATE accounts SET username = ? WHERE id = ?`
	sqlUpdateAccountSignature = `UPDATE accounts SET signature = ? WHERE id = ?`
	sqlUpdateAccountPubkey    = `UPDATE accounts SET publickey = ? WHERE id = ?`
	sqlDeleteAccount          = `DELETE FROM accounts WHERE id = ?`

	//Posts
	sqlCreatePostsTable = `CREATE TABLE IF NOT EXISTS posts(
                        id uuid NOT NULL PRIMARY KEY,
                        author_id uuid NOT NULL,
                        line1 varchar(200) NOT NULL,
                        line2 varchar(200) NOT NULL,
                        line3 varchar(200) NOT NULL,
                        location varchar(200),
                        created_at timestamp default current_timestamp
                        )`
	sqlInsertPost     = `INSERT INTO posts(id, author_id, line1, line2, line3, location, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	sqlSelectPostById = `SELECT posts.id, posts.author_id, accounts.username, posts.line1, posts.line2, posts.line3, posts.location, posts.created_at FROM posts
                                                            INNER JOIN accounts ON accounts.id = posts.author_id
                                                            WHERE posts.id = ?`
	sqlSelectAllPosts = `SELECT posts.id, posts.author_id, accounts.username, posts.line1, posts.line2, posts.line3, posts.location, posts.created_at FROM posts
                                                            INNER JOIN accounts ON accounts.id = posts.author_id
                                                            ORDER BY posts.created_at DESC`
	sqlSelectPostsByUsername = `SELECT posts.id, posts.author_id, accounts.username, posts.line1, posts.line2, posts.line3, posts.location, posts.created_at FROM posts
                                                            INNER JOIN accounts ON accounts.id = posts.author_id
                                                            WHERE accounts.username = ?
                                                            ORDER BY posts.created_at DESC`
	sqlSelectFeed = `SELECT posts.id, posts.author_id, accounts.username, posts.line1, posts.line2, posts.line3, posts.location, posts.created_at FROM posts
                                                            INNER JOIN accounts ON accounts.id = posts.author_id
                                                            WHERE posts.author_id NOT IN (SELECT target_id FROM blocks WHERE account_id = ?)
                                                            ORDER BY posts.created_at ASC`
	sqlDeletePostsByAuthor = `DELETE FROM posts WHERE author_id = ?`

	//Blocks
	sqlCreateBlocksTable = `CREATE TABLE IF NOT EXISTS blocks(
                        id uuid NOT NULL PRIMARY KEY,
                        account_id uuid NOT NULL,
                        target_id uuid NOT NULL,
                        target_name varchar(100),
                        created_at timestamp default current_timestamp,
                        UNIQUE(account_id, target_id)
                        )`
	sqlInsertBlock           = `INSERT OR IGNORE INTO blocks(id, account_id, target_id, target_name, created_at) VALUES (?, ?, ?, ?, ?)`
	sqlDeleteBlock           = `DELETE FROM blocks WHERE account_id = ? AND target_id = ?`
	sqlSelectBlocksByAccount = `SELECT target_id, target_name FROM blocks WHERE account_id = ? ORDER BY created_at ASC`
	sqlDeleteBlocksOfAccount = `DELETE FROM blocks WHERE account_id = ? OR target_id = ?`

	//Reports
	sqlCreateReportsTable = `CREATE TABLE IF NOT EXISTS reports(
                        id uuid NOT NULL PRIMARY KEY,
                        reporter_id uuid NOT NULL,
                        target_id uuid NOT NULL,
                        created_at timestamp default current_timestamp
                        )`
	sqlInsertReport = `INSERT INTO reports(id, reporter_id, target_id, created_at) VALUES (?, ?, ?, ?)`

	//Push tokens
	sqlCreatePushTokensTable = `CREATE TABLE IF NOT EXISTS push_tokens(
                        account_id uuid NOT NULL PRIMARY KEY,
                        token varchar(500) NOT NULL,
                        updated_at timestamp default current_timestamp
                        )`
	sqlUpsertPushToken = `INSERT INTO push_tokens(account_id, token, updated_at) VALUES (?, ?, ?)
                                                            ON CONFLICT(account_id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`
	sqlDeletePushToken = `DELETE FROM push_tokens WHERE account_id = ?`
)

// Open opens (and if needed initializes) the database at path. Use
// ":memory:" for tests.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if path == ":memory:" {
		// A pooled :memory: handle would open one database per connection.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	var journalMode string
	err = sqlDB.QueryRow("PRAGMA journal_mode=WAL").Scan(&journalMode)
	if err != nil {
		log.Printf("Warning: Failed to enable WAL mode: %v", err)
	} else {
		log.Printf("Database journal mode: %s", journalMode)
	}

	sqlDB.Exec("PRAGMA synchronous = NORMAL")
	sqlDB.Exec("PRAGMA cache_size = -64000")
	sqlDB.Exec("PRAGMA temp_store = MEMORY")
	sqlDB.Exec("PRAGMA busy_timeout = 5000")
	sqlDB.Exec("PRAGMA foreign_keys = ON")

	database := &DB{db: sqlDB}
	if err := database.CreateDB(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return database, nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

// CreateDB creates the schema.
func (db *DB) CreateDB() error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		for _, stmt := range []string{
			sqlCreateAccountsTable,
			sqlCreatePostsTable,
			sqlCreateBlocksTable,
			sqlCreateReportsTable,
			sqlCreatePushTokensTable,
			sqlCreateCacheTable,
		} {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *DB) CreateAccount(acc *domain.Account) error {
	sig, err := acc.Signature.Encode()
	if err != nil {
		return err
	}
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertAccount,
			acc.Id.String(),
			acc.Username,
			acc.DisplayName,
			acc.Email,
			acc.PasswordHash,
			nullable(acc.Publickey),
			sig,
			acc.CreatedAt,
		)
		return err
	})
}

func (db *DB) ReadAccountById(id uuid.UUID) (*domain.Account, error) {
	return db.scanAccount(db.db.QueryRow(sqlSelectAccountById, id.String()))
}

func (db *DB) ReadAccountByEmail(email string) (*domain.Account, error) {
	return db.scanAccount(db.db.QueryRow(sqlSelectAccountByEmail, email))
}

func (db *DB) ReadAccountByPkHash(pkHash string) (*domain.Account, error) {
	return db.scanAccount(db.db.QueryRow(sqlSelectAccountByPubkey, pkHash))
}

func (db *DB) scanAccount(row *sql.Row) (*domain.Account, error) {
	var acc domain.Account
	var idStr, rawSig string
	var displayName, publickey sql.NullString
	err := row.Scan(&idStr, &acc.Username, &displayName, &acc.Email, &acc.PasswordHash, &publickey, &rawSig, &acc.CreatedAt)
	if err != nil {
		return nil, err
	}
	acc.Id, err = uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	acc.DisplayName = displayName.String
	acc.Publickey = publickey.String
	acc.Signature, err = domain.DecodeSignature(rawSig)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// DeleteAccount removes the account with everything hanging off it.
func (db *DB) DeleteAccount(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		for _, stmt := range []string{sqlDeletePostsByAuthor, sqlDeletePushToken, sqlDeleteAccount} {
			if _, err := tx.Exec(stmt, id.String()); err != nil {
				return err
			}
		}
		_, err := tx.Exec(sqlDeleteBlocksOfAccount, id.String(), id.String())
		return err
	})
}

func (db *DB) AttachPublicKey(id uuid.UUID, pkHash string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlUpdateAccountPubkey, pkHash, id.String())
		return err
	})
}

// SubmitPost stores one haiku.
func (db *DB) SubmitPost(ctx context.Context, account *domain.Account, haiku domain.Haiku, location string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, sqlInsertPost,
			uuid.New().String(),
			account.Id.String(),
			haiku.Line1,
			haiku.Line2,
			haiku.Line3,
			location,
			time.Now(),
		)
		return err
	})
}

// Feed returns every visible post bucketed by calendar date, newest day
// first, posts within a day in arrival order. Authors blocked by userID
// are filtered out.
func (db *DB) Feed(ctx context.Context, userID uuid.UUID) ([]domain.Day, error) {
	rows, err := db.db.QueryContext(ctx, sqlSelectFeed, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	return BucketByDay(posts), nil
}

func (db *DB) ReadPostById(id uuid.UUID) (*domain.Post, error) {
	row := db.db.QueryRow(sqlSelectPostById, id.String())
	var post domain.Post
	var idStr, authorStr string
	var location sql.NullString
	err := row.Scan(&idStr, &authorStr, &post.AuthorName, &post.Haiku.Line1, &post.Haiku.Line2, &post.Haiku.Line3, &location, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	post.Id, _ = uuid.Parse(idStr)
	post.AuthorId, _ = uuid.Parse(authorStr)
	post.Location = location.String
	return &post, nil
}

func (db *DB) ReadAllPosts() ([]domain.Post, error) {
	rows, err := db.db.Query(sqlSelectAllPosts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (db *DB) ReadPostsByUsername(username string) ([]domain.Post, error) {
	rows, err := db.db.Query(sqlSelectPostsByUsername, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]domain.Post, error) {
	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		var idStr, authorStr string
		var location sql.NullString
		if err := rows.Scan(&idStr, &authorStr, &post.AuthorName, &post.Haiku.Line1, &post.Haiku.Line2, &post.Haiku.Line3, &location, &post.CreatedAt); err != nil {
			return posts, err
		}
		post.Id, _ = uuid.Parse(idStr)
		post.AuthorId, _ = uuid.Parse(authorStr)
		post.Location = location.String
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// BucketByDay groups posts (which must be in arrival order) into days,
// newest date first.
func BucketByDay(posts []domain.Post) []domain.Day {
	days := []domain.Day{}
	index := map[string]int{}
	for _, post := range posts {
		key := post.CreatedAt.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			y, m, d := post.CreatedAt.Date()
			days = append(days, domain.Day{Date: time.Date(y, m, d, 0, 0, 0, 0, post.CreatedAt.Location())})
			i = len(days) - 1
			index[key] = i
		}
		days[i].Posts = append(days[i].Posts, post)
	}
	// Arrival order visits oldest date first; the feed wants newest first.
	for l, r := 0, len(days)-1; l < r; l, r = l+1, r-1 {
		days[l], days[r] = days[r], days[l]
	}
	return days
}

func (db *DB) BlockedUsers(ctx context.Context, userID uuid.UUID) ([]domain.BlockedUser, error) {
	rows, err := db.db.QueryContext(ctx, sqlSelectBlocksByAccount, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocked := []domain.BlockedUser{}
	for rows.Next() {
		var b domain.BlockedUser
		var idStr string
		var name sql.NullString
		if err := rows.Scan(&idStr, &name); err != nil {
			return blocked, err
		}
		b.TargetId, _ = uuid.Parse(idStr)
		b.TargetName = name.String
		blocked = append(blocked, b)
	}
	return blocked, rows.Err()
}

func (db *DB) Block(ctx context.Context, account *domain.Account, targetID uuid.UUID, targetName string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, sqlInsertBlock, uuid.New().String(), account.Id.String(), targetID.String(), targetName, time.Now())
		return err
	})
}

func (db *DB) Unblock(ctx context.Context, account *domain.Account, targetID uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, sqlDeleteBlock, account.Id.String(), targetID.String())
		return err
	})
}

func (db *DB) Report(ctx context.Context, reporterID, targetID uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, sqlInsertReport, uuid.New().String(), reporterID.String(), targetID.String(), time.Now())
		return err
	})
}

func (db *DB) UpdateSignature(ctx context.Context, account *domain.Account, sig domain.Signature) error {
	raw, err := sig.Encode()
	if err != nil {
		return err
	}
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, sqlUpdateAccountSignature, raw, account.Id.String())
		return err
	})
}

func (db *DB) UpdateUsername(ctx context.Context, account *domain.Account, name string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, sqlUpdateAccountUsername, name, account.Id.String())
		return err
	})
}

func (db *DB) SavePushToken(ctx context.Context, userID uuid.UUID, token string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, sqlUpsertPushToken, userID.String(), token, time.Now())
		return err
	})
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// wrapTransaction runs the given function within a transaction.
func (db *DB) wrapTransaction(f func(tx *sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("error starting transaction: %s", err)
		return err
	}
	for {
		err = f(tx)
		if err != nil {
			serr, ok := err.(*sqlite.Error)
			if ok && serr.Code() == sqlitelib.SQLITE_BUSY {
				continue
			}
			tx.Rollback()
			log.Printf("error in transaction: %s", err)
			return err
		}
		err = tx.Commit()
		if err != nil {
			log.Printf("error committing transaction: %s", err)
			return err
		}
		break
	}
	return nil
}
