package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/store"
)

// New opens (or creates) a SQLite database file, applies the embedded
// schema, and returns a store backed by it.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wraps an existing connection. Callers are responsible for
// applying the schema (see Migrate).
func NewWithDB(db *sql.DB) store.Store { return &sqlStore{db: db} }

type sqlStore struct{ db *sql.DB }

func (s *sqlStore) Users() store.Users       { return &users{db: s.db} }
func (s *sqlStore) Sessions() store.Sessions { return &sessions{db: s.db} }
func (s *sqlStore) Posts() store.Posts       { return &posts{db: s.db} }
func (s *sqlStore) Friends() store.Friends   { return &friends{db: s.db} }
func (s *sqlStore) Items() store.Items       { return &items{db: s.db} }
func (s *sqlStore) Goals() store.Goals       { return &goals{db: s.db} }
func (s *sqlStore) Profiles() store.Profiles { return &profiles{db: s.db} }
func (s *sqlStore) Messages() store.Messages { return &messages{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqlStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

func now() time.Time { return time.Now().UTC() }

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	id := m.UserID
	if id == "" {
		id = uuid.New().String()
	}
	ts := now()
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO users (user_id, username, password_hash, creation_time, update_time)
        VALUES (?,?,?,?,?)
    `, id, m.Username, m.PasswordHash, ts, ts)
	if err != nil {
		return nil, err
	}
	out := *m
	out.UserID = id
	out.CreationTime = ts
	out.UpdateTime = ts
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, username, password_hash, creation_time, update_time
        FROM users WHERE user_id=?
    `, userID)
	return scanUser(row)
}

func (u *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, username, password_hash, creation_time, update_time
        FROM users WHERE username=?
    `, username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var out model.User
	if err := row.Scan(&out.UserID, &out.Username, &out.PasswordHash, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (u *users) Update(ctx context.Context, userID string, username, passwordHash *string) (*model.User, error) {
	res, err := u.db.ExecContext(ctx, `
        UPDATE users SET username=COALESCE(?, username),
                         password_hash=COALESCE(?, password_hash),
                         update_time=?
        WHERE user_id=?
    `, username, passwordHash, now(), userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return u.Get(ctx, userID)
}

func (u *users) Delete(ctx context.Context, userID string) error {
	_, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE user_id=?`, userID)
	return err
}

// --- Sessions ---

type sessions struct{ db *sql.DB }

func (s *sessions) Create(ctx context.Context, m *model.Session) (*model.Session, error) {
	id := m.SessionID
	if id == "" {
		id = uuid.New().String()
	}
	ts := now()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO sessions (session_id, user_id, token_hash, expires_at, creation_time)
        VALUES (?,?,?,?,?)
    `, id, m.UserID, m.TokenHash, m.ExpiresAt, ts)
	if err != nil {
		return nil, err
	}
	out := *m
	out.SessionID = id
	out.CreationTime = ts
	return &out, nil
}

func (s *sessions) GetByHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	var out model.Session
	row := s.db.QueryRowContext(ctx, `
        SELECT session_id, user_id, token_hash, expires_at, creation_time
        FROM sessions WHERE token_hash=?
    `, tokenHash)
	if err := row.Scan(&out.SessionID, &out.UserID, &out.TokenHash, &out.ExpiresAt, &out.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (s *sessions) DeleteByHash(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash=?`, tokenHash)
	return err
}

func (s *sessions) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id=?`, userID)
	return err
}

func (s *sessions) DeleteExpired(ctx context.Context, t time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, t)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// --- Posts ---

type posts struct{ db *sql.DB }

func (p *posts) Create(ctx context.Context, m *model.Post) (*model.Post, error) {
	id := uuid.New().String()
	ts := now()
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO posts (post_id, author_id, content, options, creation_time, update_time)
        VALUES (?,?,?,?,?,?)
    `, id, m.AuthorID, m.Content, m.Options, ts, ts)
	if err != nil {
		return nil, err
	}
	out := *m
	out.PostID = id
	out.CreationTime = ts
	out.UpdateTime = ts
	return &out, nil
}

func (p *posts) Get(ctx context.Context, postID string) (*model.Post, error) {
	row := p.db.QueryRowContext(ctx, `
        SELECT post_id, author_id, content, options, creation_time, update_time
        FROM posts WHERE post_id=?
    `, postID)
	return scanPost(row)
}

func scanPost(row *sql.Row) (*model.Post, error) {
	var out model.Post
	var options sql.NullString
	if err := row.Scan(&out.PostID, &out.AuthorID, &out.Content, &options, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, mapNotFound(err)
	}
	if options.Valid {
		out.Options = &options.String
	}
	return &out, nil
}

func (p *posts) List(ctx context.Context) ([]*model.Post, error) {
	return p.list(ctx, `
        SELECT post_id, author_id, content, options, creation_time, update_time
        FROM posts ORDER BY creation_time DESC
    `)
}

func (p *posts) ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	return p.list(ctx, `
        SELECT post_id, author_id, content, options, creation_time, update_time
        FROM posts WHERE author_id=? ORDER BY creation_time DESC
    `, authorID)
}

func (p *posts) list(ctx context.Context, query string, args ...interface{}) ([]*model.Post, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Post
	for rows.Next() {
		var m model.Post
		var options sql.NullString
		if err := rows.Scan(&m.PostID, &m.AuthorID, &m.Content, &options, &m.CreationTime, &m.UpdateTime); err != nil {
			return nil, err
		}
		if options.Valid {
			m.Options = &options.String
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (p *posts) Update(ctx context.Context, postID string, upd model.PostUpdate) (*model.Post, error) {
	res, err := p.db.ExecContext(ctx, `
        UPDATE posts SET content=COALESCE(?, content),
                         options=COALESCE(?, options),
                         update_time=?
        WHERE post_id=?
    `, upd.Content, upd.Options, now(), postID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return p.Get(ctx, postID)
}

func (p *posts) Delete(ctx context.Context, postID string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM posts WHERE post_id=?`, postID)
	return err
}

// --- Friends ---

type friends struct{ db *sql.DB }

func (f *friends) CreateRequest(ctx context.Context, m *model.FriendRequest) (*model.FriendRequest, error) {
	id := uuid.New().String()
	ts := now()
	_, err := f.db.ExecContext(ctx, `
        INSERT INTO friend_requests (request_id, from_id, to_id, creation_time)
        VALUES (?,?,?,?)
    `, id, m.FromID, m.ToID, ts)
	if err != nil {
		return nil, err
	}
	out := *m
	out.RequestID = id
	out.CreationTime = ts
	return &out, nil
}

func (f *friends) GetRequest(ctx context.Context, requestID string) (*model.FriendRequest, error) {
	var out model.FriendRequest
	row := f.db.QueryRowContext(ctx, `
        SELECT request_id, from_id, to_id, creation_time
        FROM friend_requests WHERE request_id=?
    `, requestID)
	if err := row.Scan(&out.RequestID, &out.FromID, &out.ToID, &out.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (f *friends) ListRequests(ctx context.Context, userID string) ([]*model.FriendRequest, error) {
	rows, err := f.db.QueryContext(ctx, `
        SELECT request_id, from_id, to_id, creation_time
        FROM friend_requests WHERE from_id=? OR to_id=? ORDER BY creation_time DESC
    `, userID, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.FriendRequest
	for rows.Next() {
		var m model.FriendRequest
		if err := rows.Scan(&m.RequestID, &m.FromID, &m.ToID, &m.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (f *friends) DeleteRequest(ctx context.Context, requestID string) error {
	_, err := f.db.ExecContext(ctx, `DELETE FROM friend_requests WHERE request_id=?`, requestID)
	return err
}

func (f *friends) AcceptRequest(ctx context.Context, requestID string) (*model.Friendship, error) {
	tx, err := f.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var fromID, toID string
	row := tx.QueryRowContext(ctx, `SELECT from_id, to_id FROM friend_requests WHERE request_id=?`, requestID)
	if err := row.Scan(&fromID, &toID); err != nil {
		return nil, mapNotFound(err)
	}

	id := uuid.New().String()
	ts := now()
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO friendships (friendship_id, user_a, user_b, creation_time)
        VALUES (?,?,?,?)
    `, id, fromID, toID, ts); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM friend_requests WHERE request_id=?`, requestID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &model.Friendship{FriendshipID: id, UserA: fromID, UserB: toID, CreationTime: ts}, nil
}

func (f *friends) ListFriends(ctx context.Context, userID string) ([]*model.Friendship, error) {
	rows, err := f.db.QueryContext(ctx, `
        SELECT friendship_id, user_a, user_b, creation_time
        FROM friendships WHERE user_a=? OR user_b=? ORDER BY creation_time DESC
    `, userID, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Friendship
	for rows.Next() {
		var m model.Friendship
		if err := rows.Scan(&m.FriendshipID, &m.UserA, &m.UserB, &m.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (f *friends) DeleteFriendship(ctx context.Context, userA, userB string) error {
	_, err := f.db.ExecContext(ctx, `
        DELETE FROM friendships WHERE (user_a=? AND user_b=?) OR (user_a=? AND user_b=?)
    `, userA, userB, userB, userA)
	return err
}

// --- Items ---

type items struct{ db *sql.DB }

func (i *items) Create(ctx context.Context, m *model.Item) (*model.Item, error) {
	id := uuid.New().String()
	ts := now()
	_, err := i.db.ExecContext(ctx, `
        INSERT INTO items (item_id, creator_id, title, description, status, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?)
    `, id, m.CreatorID, m.Title, m.Description, m.Status, ts, ts)
	if err != nil {
		return nil, err
	}
	out := *m
	out.ItemID = id
	out.CreationTime = ts
	out.UpdateTime = ts
	return &out, nil
}

func (i *items) Get(ctx context.Context, itemID string) (*model.Item, error) {
	var out model.Item
	row := i.db.QueryRowContext(ctx, `
        SELECT item_id, creator_id, title, description, status, creation_time, update_time
        FROM items WHERE item_id=?
    `, itemID)
	if err := row.Scan(&out.ItemID, &out.CreatorID, &out.Title, &out.Description, &out.Status, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (i *items) ListByCreator(ctx context.Context, creatorID string) ([]*model.Item, error) {
	rows, err := i.db.QueryContext(ctx, `
        SELECT item_id, creator_id, title, description, status, creation_time, update_time
        FROM items WHERE creator_id=? ORDER BY creation_time DESC
    `, creatorID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Item
	for rows.Next() {
		var m model.Item
		if err := rows.Scan(&m.ItemID, &m.CreatorID, &m.Title, &m.Description, &m.Status, &m.CreationTime, &m.UpdateTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (i *items) Update(ctx context.Context, itemID string, upd model.ItemUpdate) (*model.Item, error) {
	res, err := i.db.ExecContext(ctx, `
        UPDATE items SET title=COALESCE(?, title),
                         description=COALESCE(?, description),
                         status=COALESCE(?, status),
                         update_time=?
        WHERE item_id=?
    `, upd.Title, upd.Description, upd.Status, now(), itemID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return i.Get(ctx, itemID)
}

func (i *items) Delete(ctx context.Context, itemID string) error {
	_, err := i.db.ExecContext(ctx, `DELETE FROM items WHERE item_id=?`, itemID)
	return err
}

// --- Goals ---

type goals struct{ db *sql.DB }

func (g *goals) Create(ctx context.Context, m *model.Goal) (*model.Goal, error) {
	id := uuid.New().String()
	ts := now()
	_, err := g.db.ExecContext(ctx, `
        INSERT INTO goals (goal_id, executor_id, title, description, status, due, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?,?)
    `, id, m.ExecutorID, m.Title, m.Description, m.Status, m.Due, ts, ts)
	if err != nil {
		return nil, err
	}
	out := *m
	out.GoalID = id
	out.CreationTime = ts
	out.UpdateTime = ts
	return &out, nil
}

func (g *goals) Get(ctx context.Context, goalID string) (*model.Goal, error) {
	var out model.Goal
	row := g.db.QueryRowContext(ctx, `
        SELECT goal_id, executor_id, title, description, status, due, creation_time, update_time
        FROM goals WHERE goal_id=?
    `, goalID)
	if err := row.Scan(&out.GoalID, &out.ExecutorID, &out.Title, &out.Description, &out.Status, &out.Due, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (g *goals) ListByExecutor(ctx context.Context, executorID, status string) ([]*model.Goal, error) {
	query := `
        SELECT goal_id, executor_id, title, description, status, due, creation_time, update_time
        FROM goals WHERE executor_id=?`
	args := []interface{}{executorID}
	if status != "" {
		query += ` AND status=?`
		args = append(args, status)
	}
	query += ` ORDER BY due ASC`
	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Goal
	for rows.Next() {
		var m model.Goal
		if err := rows.Scan(&m.GoalID, &m.ExecutorID, &m.Title, &m.Description, &m.Status, &m.Due, &m.CreationTime, &m.UpdateTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (g *goals) Update(ctx context.Context, goalID string, upd model.GoalUpdate) (*model.Goal, error) {
	res, err := g.db.ExecContext(ctx, `
        UPDATE goals SET title=COALESCE(?, title),
                         description=COALESCE(?, description),
                         status=COALESCE(?, status),
                         due=COALESCE(?, due),
                         update_time=?
        WHERE goal_id=?
    `, upd.Title, upd.Description, upd.Status, upd.Due, now(), goalID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return g.Get(ctx, goalID)
}

func (g *goals) Delete(ctx context.Context, goalID string) error {
	_, err := g.db.ExecContext(ctx, `DELETE FROM goals WHERE goal_id=?`, goalID)
	return err
}

func (g *goals) MarkPastDue(ctx context.Context, t time.Time) (int, error) {
	rows, err := g.db.QueryContext(ctx, `
        SELECT goal_id FROM goals WHERE status=? AND due < ?
    `, model.GoalPending, t)
	if err != nil {
		return 0, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return 0, err
		}
		ids = append(ids, id)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	// Each goal is updated on its own; a failure mid-sweep leaves the rest
	// pending for the next pass.
	count := 0
	for _, id := range ids {
		if _, err := g.db.ExecContext(ctx, `
            UPDATE goals SET status=?, update_time=? WHERE goal_id=? AND status=?
        `, model.GoalPastDue, now(), id, model.GoalPending); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// --- Profiles ---

type profiles struct{ db *sql.DB }

func (p *profiles) Create(ctx context.Context, m *model.Profile) (*model.Profile, error) {
	id := uuid.New().String()
	ts := now()
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO profiles (profile_id, user_id, name, contact, bio, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?)
    `, id, m.UserID, m.Name, m.Contact, m.Bio, ts, ts)
	if err != nil {
		return nil, err
	}
	out := *m
	out.ProfileID = id
	out.CreationTime = ts
	out.UpdateTime = ts
	return &out, nil
}

func (p *profiles) GetByUser(ctx context.Context, userID string) (*model.Profile, error) {
	var out model.Profile
	var contact, bio sql.NullString
	row := p.db.QueryRowContext(ctx, `
        SELECT profile_id, user_id, name, contact, bio, creation_time, update_time
        FROM profiles WHERE user_id=?
    `, userID)
	if err := row.Scan(&out.ProfileID, &out.UserID, &out.Name, &contact, &bio, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, mapNotFound(err)
	}
	if contact.Valid {
		out.Contact = &contact.String
	}
	if bio.Valid {
		out.Bio = &bio.String
	}
	return &out, nil
}

func (p *profiles) Update(ctx context.Context, userID string, upd model.ProfileUpdate) (*model.Profile, error) {
	res, err := p.db.ExecContext(ctx, `
        UPDATE profiles SET name=COALESCE(?, name),
                            contact=COALESCE(?, contact),
                            bio=COALESCE(?, bio),
                            update_time=?
        WHERE user_id=?
    `, upd.Name, upd.Contact, upd.Bio, now(), userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return p.GetByUser(ctx, userID)
}

func (p *profiles) DeleteByUser(ctx context.Context, userID string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id=?`, userID)
	return err
}

// --- Messages ---

type messages struct{ db *sql.DB }

const messageCols = `message_id, sender_id, recipient_id, text, attachment, state, pair_id,
       drafted_at, sent_at, received_at, creation_time, update_time`

func (m *messages) CreateDraft(ctx context.Context, msg *model.Message) (*model.Message, error) {
	id := uuid.New().String()
	ts := now()
	_, err := m.db.ExecContext(ctx, `
        INSERT INTO messages (message_id, sender_id, recipient_id, text, attachment, state,
                              drafted_at, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?,?,?)
    `, id, msg.SenderID, msg.RecipientID, msg.Text, msg.Attachment, model.MessageDraft, ts, ts, ts)
	if err != nil {
		return nil, err
	}
	out := *msg
	out.MessageID = id
	out.State = model.MessageDraft
	out.DraftedAt = &ts
	out.CreationTime = ts
	out.UpdateTime = ts
	return &out, nil
}

func (m *messages) Get(ctx context.Context, messageID string) (*model.Message, error) {
	row := m.db.QueryRowContext(ctx, `SELECT `+messageCols+` FROM messages WHERE message_id=?`, messageID)
	return scanMessageRow(row)
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanMessage(r rowScanner) (*model.Message, error) {
	var out model.Message
	var attachment, pairID sql.NullString
	var drafted, sent, received sql.NullTime
	if err := r.Scan(&out.MessageID, &out.SenderID, &out.RecipientID, &out.Text, &attachment,
		&out.State, &pairID, &drafted, &sent, &received, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, err
	}
	if attachment.Valid {
		out.Attachment = &attachment.String
	}
	if pairID.Valid {
		out.PairID = &pairID.String
	}
	if drafted.Valid {
		out.DraftedAt = &drafted.Time
	}
	if sent.Valid {
		out.SentAt = &sent.Time
	}
	if received.Valid {
		out.ReceivedAt = &received.Time
	}
	return &out, nil
}

func scanMessageRow(row *sql.Row) (*model.Message, error) {
	out, err := scanMessage(row)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return out, nil
}

func (m *messages) ListBySender(ctx context.Context, senderID string, state model.MessageState) ([]*model.Message, error) {
	return m.list(ctx, `SELECT `+messageCols+` FROM messages WHERE sender_id=? AND state=? ORDER BY creation_time DESC`, senderID, state)
}

func (m *messages) ListByRecipient(ctx context.Context, recipientID string, state model.MessageState) ([]*model.Message, error) {
	return m.list(ctx, `SELECT `+messageCols+` FROM messages WHERE recipient_id=? AND state=? ORDER BY creation_time DESC`, recipientID, state)
}

func (m *messages) list(ctx context.Context, query string, args ...interface{}) ([]*model.Message, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

func (m *messages) UpdateDraft(ctx context.Context, messageID string, upd model.DraftUpdate) (*model.Message, error) {
	res, err := m.db.ExecContext(ctx, `
        UPDATE messages SET recipient_id=COALESCE(?, recipient_id),
                            text=COALESCE(?, text),
                            attachment=COALESCE(?, attachment),
                            update_time=?
        WHERE message_id=?
    `, upd.RecipientID, upd.Text, upd.Attachment, now(), messageID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return m.Get(ctx, messageID)
}

// Send creates the recipient's "received" copy and flips the draft to
// "sent" in one transaction so the two copies cannot desynchronize.
func (m *messages) Send(ctx context.Context, messageID string) (*model.Message, *model.Message, error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	orig, err := scanMessage(tx.QueryRowContext(ctx, `SELECT `+messageCols+` FROM messages WHERE message_id=?`, messageID))
	if err != nil {
		return nil, nil, mapNotFound(err)
	}
	if orig.State != model.MessageDraft {
		return nil, nil, model.ErrNotAllowed
	}

	copyID := uuid.New().String()
	ts := now()
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO messages (message_id, sender_id, recipient_id, text, attachment, state,
                              pair_id, received_at, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?,?,?,?)
    `, copyID, orig.SenderID, orig.RecipientID, orig.Text, orig.Attachment, model.MessageReceived,
		orig.MessageID, ts, ts, ts); err != nil {
		return nil, nil, err
	}
	if _, err := tx.ExecContext(ctx, `
        UPDATE messages SET state=?, pair_id=?, drafted_at=NULL, sent_at=?, update_time=?
        WHERE message_id=?
    `, model.MessageSent, copyID, ts, ts, orig.MessageID); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	sent := *orig
	sent.State = model.MessageSent
	sent.PairID = &copyID
	sent.DraftedAt = nil
	sent.SentAt = &ts
	sent.UpdateTime = ts

	received := *orig
	received.MessageID = copyID
	received.State = model.MessageReceived
	received.PairID = &orig.MessageID
	received.DraftedAt = nil
	received.ReceivedAt = &ts
	received.CreationTime = ts
	received.UpdateTime = ts
	return &sent, &received, nil
}

// UpdateSentText mirrors the text onto both linked copies in one
// transaction.
func (m *messages) UpdateSentText(ctx context.Context, messageID, text string) (*model.Message, error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	orig, err := scanMessage(tx.QueryRowContext(ctx, `SELECT `+messageCols+` FROM messages WHERE message_id=?`, messageID))
	if err != nil {
		return nil, mapNotFound(err)
	}
	if orig.State != model.MessageSent || orig.PairID == nil {
		return nil, model.ErrNotAllowed
	}

	ts := now()
	if _, err := tx.ExecContext(ctx, `
        UPDATE messages SET text=?, update_time=? WHERE message_id=? OR message_id=?
    `, text, ts, orig.MessageID, *orig.PairID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	out := *orig
	out.Text = text
	out.UpdateTime = ts
	return &out, nil
}

func (m *messages) Delete(ctx context.Context, messageID string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM messages WHERE message_id=?`, messageID)
	return err
}

func (m *messages) DeletePair(ctx context.Context, messageID string) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var pairID sql.NullString
	row := tx.QueryRowContext(ctx, `SELECT pair_id FROM messages WHERE message_id=?`, messageID)
	if err := row.Scan(&pairID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil // already gone
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE message_id=?`, messageID); err != nil {
		return err
	}
	if pairID.Valid {
		if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE message_id=?`, pairID.String); err != nil {
			return err
		}
	}
	return tx.Commit()
}
