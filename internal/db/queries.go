package db

import (
	"context"
	"encoding/json"
)

const createUser = `
INSERT INTO users (email, password_hash, name)
VALUES ($1, $2, $3)
RETURNING id, email, password_hash, name, created_at
`

type CreateUserParams struct {
	Email        string
	PasswordHash string
	Name         string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.Email, arg.PasswordHash, arg.Name)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	return u, err
}

const getUserByEmail = `
SELECT id, email, password_hash, name, created_at
FROM users
WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	return u, err
}

const getUserByID = `
SELECT id, email, password_hash, name, created_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	return u, err
}

const createCase = `
INSERT INTO cases (user_id, name, graph_json)
VALUES ($1, $2, $3)
RETURNING id, user_id, name, graph_json, created_at, updated_at
`

type CreateCaseParams struct {
	UserID    int64
	Name      string
	GraphJSON json.RawMessage
}

func (q *Queries) CreateCase(ctx context.Context, arg CreateCaseParams) (Case, error) {
	row := q.db.QueryRow(ctx, createCase, arg.UserID, arg.Name, arg.GraphJSON)
	var c Case
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.GraphJSON, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getCase = `
SELECT id, user_id, name, graph_json, created_at, updated_at
FROM cases
WHERE id = $1
`

func (q *Queries) GetCase(ctx context.Context, id int64) (Case, error) {
	row := q.db.QueryRow(ctx, getCase, id)
	var c Case
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.GraphJSON, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getCaseForUser = `
SELECT id, user_id, name, graph_json, created_at, updated_at
FROM cases
WHERE id = $1 AND user_id = $2
`

type GetCaseForUserParams struct {
	ID     int64
	UserID int64
}

func (q *Queries) GetCaseForUser(ctx context.Context, arg GetCaseForUserParams) (Case, error) {
	row := q.db.QueryRow(ctx, getCaseForUser, arg.ID, arg.UserID)
	var c Case
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.GraphJSON, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const listCases = `
SELECT id, user_id, name, created_at, updated_at
FROM cases
WHERE user_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListCases(ctx context.Context, userID int64) ([]Case, error) {
	rows, err := q.db.Query(ctx, listCases, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Case, 0)
	for rows.Next() {
		var c Case
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const updateCaseGraph = `
UPDATE cases
SET graph_json = $2, updated_at = now()
WHERE id = $1
`

type UpdateCaseGraphParams struct {
	ID        int64
	GraphJSON json.RawMessage
}

func (q *Queries) UpdateCaseGraph(ctx context.Context, arg UpdateCaseGraphParams) error {
	_, err := q.db.Exec(ctx, updateCaseGraph, arg.ID, arg.GraphJSON)
	return err
}

const deleteCase = `
DELETE FROM cases
WHERE id = $1 AND user_id = $2
`

type DeleteCaseParams struct {
	ID     int64
	UserID int64
}

func (q *Queries) DeleteCase(ctx context.Context, arg DeleteCaseParams) error {
	_, err := q.db.Exec(ctx, deleteCase, arg.ID, arg.UserID)
	return err
}

const addMessage = `
INSERT INTO messages (public_id, case_id, role, content)
VALUES ($1, $2, $3, $4)
RETURNING id, public_id, case_id, role, content, created_at
`

type AddMessageParams struct {
	PublicID string
	CaseID   int64
	Role     string
	Content  string
}

func (q *Queries) AddMessage(ctx context.Context, arg AddMessageParams) (Message, error) {
	row := q.db.QueryRow(ctx, addMessage, arg.PublicID, arg.CaseID, arg.Role, arg.Content)
	var m Message
	err := row.Scan(&m.ID, &m.PublicID, &m.CaseID, &m.Role, &m.Content, &m.CreatedAt)
	return m, err
}

const listMessages = `
SELECT id, public_id, case_id, role, content, created_at
FROM messages
WHERE case_id = $1
ORDER BY created_at ASC, id ASC
`

func (q *Queries) ListMessages(ctx context.Context, caseID int64) ([]Message, error) {
	rows, err := q.db.Query(ctx, listMessages, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.PublicID, &m.CaseID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const listRecentMessages = `
SELECT id, public_id, case_id, role, content, created_at
FROM (
	SELECT id, public_id, case_id, role, content, created_at
	FROM messages
	WHERE case_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2
) recent
ORDER BY created_at ASC, id ASC
`

type ListRecentMessagesParams struct {
	CaseID int64
	Limit  int32
}

// ListRecentMessages returns the newest messages of a case in
// chronological order, suitable as chat history.
func (q *Queries) ListRecentMessages(ctx context.Context, arg ListRecentMessagesParams) ([]Message, error) {
	rows, err := q.db.Query(ctx, listRecentMessages, arg.CaseID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.PublicID, &m.CaseID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const addEvidenceFile = `
INSERT INTO evidence_files (case_id, name, file_key, file_type, status)
VALUES ($1, $2, $3, $4, 'pending')
RETURNING id, case_id, name, file_key, file_type, status, created_at
`

type AddEvidenceFileParams struct {
	CaseID   int64
	Name     string
	FileKey  string
	FileType string
}

func (q *Queries) AddEvidenceFile(ctx context.Context, arg AddEvidenceFileParams) (EvidenceFile, error) {
	row := q.db.QueryRow(ctx, addEvidenceFile, arg.CaseID, arg.Name, arg.FileKey, arg.FileType)
	var f EvidenceFile
	err := row.Scan(&f.ID, &f.CaseID, &f.Name, &f.FileKey, &f.FileType, &f.Status, &f.CreatedAt)
	return f, err
}

const getEvidenceFile = `
SELECT id, case_id, name, file_key, file_type, status, created_at
FROM evidence_files
WHERE id = $1
`

func (q *Queries) GetEvidenceFile(ctx context.Context, id int64) (EvidenceFile, error) {
	row := q.db.QueryRow(ctx, getEvidenceFile, id)
	var f EvidenceFile
	err := row.Scan(&f.ID, &f.CaseID, &f.Name, &f.FileKey, &f.FileType, &f.Status, &f.CreatedAt)
	return f, err
}

const listEvidenceFiles = `
SELECT id, case_id, name, file_key, file_type, status, created_at
FROM evidence_files
WHERE case_id = $1
ORDER BY created_at ASC
`

func (q *Queries) ListEvidenceFiles(ctx context.Context, caseID int64) ([]EvidenceFile, error) {
	rows, err := q.db.Query(ctx, listEvidenceFiles, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]EvidenceFile, 0)
	for rows.Next() {
		var f EvidenceFile
		if err := rows.Scan(&f.ID, &f.CaseID, &f.Name, &f.FileKey, &f.FileType, &f.Status, &f.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

const updateEvidenceFileStatus = `
UPDATE evidence_files
SET status = $2
WHERE id = $1
`

type UpdateEvidenceFileStatusParams struct {
	ID     int64
	Status string
}

func (q *Queries) UpdateEvidenceFileStatus(ctx context.Context, arg UpdateEvidenceFileStatusParams) error {
	_, err := q.db.Exec(ctx, updateEvidenceFileStatus, arg.ID, arg.Status)
	return err
}
