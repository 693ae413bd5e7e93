package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/talentgraph/backend/config"
	"github.com/talentgraph/backend/models"
)

const (
	candidatesCollection   = "candidates"
	jobsCollection         = "jobs"
	usersCollection        = "users"
	chatSessionsCollection = "chat_sessions"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = errors.New("not found")

// FirestoreClient wraps Firestore operations
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient creates a new Firestore client
func NewFirestoreClient(ctx context.Context, cfg *config.Config) (*FirestoreClient, error) {
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreClient{client: client}, nil
}

// Close closes the Firestore client
func (f *FirestoreClient) Close() error {
	return f.client.Close()
}

// CreateCandidate stores a new candidate and assigns it a document id
func (f *FirestoreClient) CreateCandidate(ctx context.Context, cand *models.Candidate) error {
	cand.CreatedAt = time.Now()
	cand.UpdatedAt = cand.CreatedAt
	if cand.Status == "" {
		cand.Status = models.CandidateStatusActive
	}

	docRef := f.client.Collection(candidatesCollection).NewDoc()
	if _, err := docRef.Set(ctx, cand); err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	cand.ID = docRef.ID
	return nil
}

// GetCandidate retrieves a candidate by document id
func (f *FirestoreClient) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	doc, err := f.client.Collection(candidatesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	var cand models.Candidate
	if err := doc.DataTo(&cand); err != nil {
		return nil, fmt.Errorf("failed to parse candidate data: %w", err)
	}

	cand.ID = doc.Ref.ID
	return &cand, nil
}

// ListCandidates returns a page of candidates ordered by creation time
func (f *FirestoreClient) ListCandidates(ctx context.Context, skip, limit int) ([]models.Candidate, error) {
	iter := f.client.Collection(candidatesCollection).
		OrderBy("createdAt", firestore.Desc).
		Offset(skip).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	candidates := make([]models.Candidate, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list candidates: %w", err)
		}

		var cand models.Candidate
		if err := doc.DataTo(&cand); err != nil {
			return nil, fmt.Errorf("failed to parse candidate data: %w", err)
		}
		cand.ID = doc.Ref.ID
		candidates = append(candidates, cand)
	}

	return candidates, nil
}

// ListAllCandidates returns every stored candidate (used by ranking and stats)
func (f *FirestoreClient) ListAllCandidates(ctx context.Context) ([]*models.Candidate, error) {
	iter := f.client.Collection(candidatesCollection).Documents(ctx)
	defer iter.Stop()

	candidates := make([]*models.Candidate, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list candidates: %w", err)
		}

		var cand models.Candidate
		if err := doc.DataTo(&cand); err != nil {
			return nil, fmt.Errorf("failed to parse candidate data: %w", err)
		}
		cand.ID = doc.Ref.ID
		candidates = append(candidates, &cand)
	}

	return candidates, nil
}

// CountCandidates returns the total number of stored candidates
func (f *FirestoreClient) CountCandidates(ctx context.Context) (int, error) {
	return f.countCollection(ctx, candidatesCollection)
}

// DeleteCandidate removes a candidate document
func (f *FirestoreClient) DeleteCandidate(ctx context.Context, id string) error {
	if _, err := f.client.Collection(candidatesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	return nil
}

// CreateJob stores a new job and assigns it a document id
func (f *FirestoreClient) CreateJob(ctx context.Context, job *models.Job) error {
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	if job.Status == "" {
		job.Status = models.JobStatusActive
	}

	docRef := f.client.Collection(jobsCollection).NewDoc()
	if _, err := docRef.Set(ctx, job); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	job.ID = docRef.ID
	return nil
}

// GetJob retrieves a job by document id
func (f *FirestoreClient) GetJob(ctx context.Context, id string) (*models.Job, error) {
	doc, err := f.client.Collection(jobsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	var job models.Job
	if err := doc.DataTo(&job); err != nil {
		return nil, fmt.Errorf("failed to parse job data: %w", err)
	}

	job.ID = doc.Ref.ID
	return &job, nil
}

// ListJobs returns a page of jobs ordered by creation time
func (f *FirestoreClient) ListJobs(ctx context.Context, skip, limit int) ([]models.Job, error) {
	iter := f.client.Collection(jobsCollection).
		OrderBy("createdAt", firestore.Desc).
		Offset(skip).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	jobs := make([]models.Job, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list jobs: %w", err)
		}

		var job models.Job
		if err := doc.DataTo(&job); err != nil {
			return nil, fmt.Errorf("failed to parse job data: %w", err)
		}
		job.ID = doc.Ref.ID
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// ListAllJobs returns every stored job (used by ranking and stats)
func (f *FirestoreClient) ListAllJobs(ctx context.Context) ([]*models.Job, error) {
	iter := f.client.Collection(jobsCollection).Documents(ctx)
	defer iter.Stop()

	jobs := make([]*models.Job, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list jobs: %w", err)
		}

		var job models.Job
		if err := doc.DataTo(&job); err != nil {
			return nil, fmt.Errorf("failed to parse job data: %w", err)
		}
		job.ID = doc.Ref.ID
		jobs = append(jobs, &job)
	}

	return jobs, nil
}

// CountJobs returns the total number of stored jobs
func (f *FirestoreClient) CountJobs(ctx context.Context) (int, error) {
	return f.countCollection(ctx, jobsCollection)
}

// DeleteJob removes a job document
func (f *FirestoreClient) DeleteJob(ctx context.Context, id string) error {
	if _, err := f.client.Collection(jobsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// CreateUser creates a new recruiter account
func (f *FirestoreClient) CreateUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	// Use email as document ID for uniqueness
	docRef := f.client.Collection(usersCollection).Doc(user.Email)

	_, err := docRef.Get(ctx)
	if err == nil {
		return errors.New("user with this email already exists")
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check user existence: %w", err)
	}

	if _, err := docRef.Set(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = user.Email
	return nil
}

// GetUserByEmail retrieves a recruiter account by email
func (f *FirestoreClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	doc, err := f.client.Collection(usersCollection).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to parse user data: %w", err)
	}

	user.ID = doc.Ref.ID
	return &user, nil
}

// ChatSession is a stored per-session chat transcript. Sessions are explicit
// request-scoped objects keyed by session id; there is no ambient active
// session in the server.
type ChatSession struct {
	SessionID string        `firestore:"-"`
	Messages  []ChatMessage `firestore:"messages"`
	UpdatedAt time.Time     `firestore:"updatedAt"`
}

// ChatMessage is one turn of a chat session
type ChatMessage struct {
	Role      string    `firestore:"role"` // user or assistant
	Content   string    `firestore:"content"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// GetChatSession loads a session transcript; a missing session is an empty one
func (f *FirestoreClient) GetChatSession(ctx context.Context, sessionID string) (*ChatSession, error) {
	doc, err := f.client.Collection(chatSessionsCollection).Doc(sessionID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &ChatSession{SessionID: sessionID}, nil
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}

	var session ChatSession
	if err := doc.DataTo(&session); err != nil {
		return nil, fmt.Errorf("failed to parse chat session: %w", err)
	}

	session.SessionID = doc.Ref.ID
	return &session, nil
}

// AppendChatMessages appends turns to a session transcript
func (f *FirestoreClient) AppendChatMessages(ctx context.Context, sessionID string, messages ...ChatMessage) error {
	raw := make([]interface{}, 0, len(messages))
	for _, m := range messages {
		raw = append(raw, m)
	}

	docRef := f.client.Collection(chatSessionsCollection).Doc(sessionID)
	_, err := docRef.Set(ctx, map[string]interface{}{
		"messages":  firestore.ArrayUnion(raw...),
		"updatedAt": time.Now(),
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to append chat messages: %w", err)
	}
	return nil
}

// ClearChatSession deletes a session transcript
func (f *FirestoreClient) ClearChatSession(ctx context.Context, sessionID string) error {
	if _, err := f.client.Collection(chatSessionsCollection).Doc(sessionID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear chat session: %w", err)
	}
	return nil
}

func (f *FirestoreClient) countCollection(ctx context.Context, name string) (int, error) {
	iter := f.client.Collection(name).Select().Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count %s: %w", name, err)
		}
		count++
	}
	return count, nil
}
