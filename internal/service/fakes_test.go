package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/liftlink/backend/internal/domain"
	"github.com/liftlink/backend/internal/repository"
)

// In-memory repositories backing the service tests. They mirror the
// postgres implementations' contracts: nil on miss, storage ordering,
// and the pending-uniqueness rule.

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByVerificationCode(_ context.Context, code string) (*domain.User, error) {
	for _, u := range r.users {
		if u.VerificationCode != nil && *u.VerificationCode == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return nil
	}
	cp := *user
	cp.Email = stored.Email
	cp.University = stored.University
	cp.Verified = stored.Verified
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Verified = true
		u.VerificationCode = nil
	}
	return nil
}

func (r *fakeUserRepo) SetVerificationCode(_ context.Context, id uuid.UUID, code string) error {
	if u, ok := r.users[id]; ok {
		c := code
		u.VerificationCode = &c
	}
	return nil
}

func (r *fakeUserRepo) ListProfiles(_ context.Context, f repository.ProfileFilter) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, u := range r.users {
		if !u.Verified || u.University != f.University || u.ID == f.ExcludeID {
			continue
		}
		if f.Gender != nil && u.Gender != *f.Gender {
			continue
		}
		if f.AgeMin != nil && u.Age < *f.AgeMin {
			continue
		}
		if f.AgeMax != nil && u.Age > *f.AgeMax {
			continue
		}
		if f.ExperienceLevel != nil && u.ExperienceLevel != *f.ExperienceLevel {
			continue
		}
		out = append(out, domain.Profile{
			ID:                          u.ID,
			Name:                        u.Name,
			DisplayName:                 u.DisplayName,
			Gender:                      u.Gender,
			Age:                         u.Age,
			ExperienceLevel:             u.ExperienceLevel,
			FitnessTags:                 u.FitnessTags,
			Bio:                         u.Bio,
			AdditionalInfo:              u.AdditionalInfo,
			ProfilePhoto:                u.ProfilePhoto,
			ShowProfileToSameGenderOnly: u.ShowProfileToSameGenderOnly,
			CreatedAt:                   u.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakePostRepo struct {
	posts map[uuid.UUID]*domain.GymPost
	users *fakeUserRepo

	// mirrors the gym_post_id ON DELETE SET NULL foreign key
	interests *fakeInterestRepo
}

func newFakePostRepo(users *fakeUserRepo) *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*domain.GymPost), users: users}
}

func (r *fakePostRepo) Create(_ context.Context, post *domain.GymPost) error {
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.GymPost, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	r.joinCreator(&cp)
	return &cp, nil
}

func (r *fakePostRepo) List(_ context.Context, f repository.SessionFilter) ([]domain.GymPost, error) {
	var out []domain.GymPost
	for _, p := range r.posts {
		if p.University != f.University {
			continue
		}
		if p.DateTime.Before(f.From) {
			continue
		}
		if f.To != nil && p.DateTime.After(*f.To) {
			continue
		}
		if f.GenderPreference != nil && (p.GenderPreference == nil || *p.GenderPreference != *f.GenderPreference) {
			continue
		}
		if f.ExperiencePreference != nil && (p.ExperiencePreference == nil || *p.ExperiencePreference != *f.ExperiencePreference) {
			continue
		}
		cp := *p
		r.joinCreator(&cp)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out, nil
}

func (r *fakePostRepo) UpdateOwned(_ context.Context, post *domain.GymPost) (bool, error) {
	stored, ok := r.posts[post.ID]
	if !ok || stored.CreatorID != post.CreatorID {
		return false, nil
	}
	cp := *post
	r.posts[post.ID] = &cp
	return true, nil
}

func (r *fakePostRepo) DeleteOwned(_ context.Context, id, creatorID uuid.UUID) (bool, error) {
	stored, ok := r.posts[id]
	if !ok || stored.CreatorID != creatorID {
		return false, nil
	}
	delete(r.posts, id)
	if r.interests != nil {
		for _, req := range r.interests.reqs {
			if req.GymPostID != nil && *req.GymPostID == id {
				req.GymPostID = nil
			}
		}
	}
	return true, nil
}

func (r *fakePostRepo) joinCreator(p *domain.GymPost) {
	if u, ok := r.users.users[p.CreatorID]; ok {
		p.CreatorName = u.Name
		p.CreatorDisplayName = u.DisplayName
		p.CreatorGender = u.Gender
	}
}

type fakeInterestRepo struct {
	reqs  map[uuid.UUID]*domain.InterestRequest
	users *fakeUserRepo
}

func newFakeInterestRepo(users *fakeUserRepo) *fakeInterestRepo {
	return &fakeInterestRepo{reqs: make(map[uuid.UUID]*domain.InterestRequest), users: users}
}

func (r *fakeInterestRepo) Create(_ context.Context, req *domain.InterestRequest) error {
	for _, existing := range r.reqs {
		if existing.Status != domain.InterestPending {
			continue
		}
		if existing.SenderID != req.SenderID || existing.ReceiverID != req.ReceiverID {
			continue
		}
		if samePost(existing.GymPostID, req.GymPostID) {
			return repository.ErrDuplicatePending
		}
	}
	cp := *req
	r.reqs[req.ID] = &cp
	return nil
}

func samePost(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func (r *fakeInterestRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.InterestRequest, error) {
	req, ok := r.reqs[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	if u, ok := r.users.users[cp.SenderID]; ok {
		cp.SenderName = u.Name
		cp.SenderDisplayName = u.DisplayName
		email := u.Email
		cp.SenderEmail = &email
		cp.SenderPhone = u.PhoneNumber
	}
	return &cp, nil
}

func (r *fakeInterestRepo) Resolve(_ context.Context, id uuid.UUID, status string) (bool, error) {
	req, ok := r.reqs[id]
	if !ok || req.Status != domain.InterestPending {
		return false, nil
	}
	req.Status = status
	return true, nil
}

func (r *fakeInterestRepo) ListSent(_ context.Context, senderID uuid.UUID) ([]domain.InterestRequest, error) {
	var out []domain.InterestRequest
	for _, req := range r.reqs {
		if req.SenderID != senderID {
			continue
		}
		cp := *req
		if u, ok := r.users.users[cp.ReceiverID]; ok {
			cp.ReceiverName = u.Name
			cp.ReceiverDisplayName = u.DisplayName
			email := u.Email
			cp.ReceiverEmail = &email
			cp.ReceiverPhone = u.PhoneNumber
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeInterestRepo) ListReceived(_ context.Context, receiverID uuid.UUID) ([]domain.InterestRequest, error) {
	var out []domain.InterestRequest
	for _, req := range r.reqs {
		if req.ReceiverID != receiverID {
			continue
		}
		cp := *req
		if u, ok := r.users.users[cp.SenderID]; ok {
			cp.SenderName = u.Name
			cp.SenderDisplayName = u.DisplayName
			email := u.Email
			cp.SenderEmail = &email
			cp.SenderPhone = u.PhoneNumber
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeInterestRepo) CountPending(_ context.Context, receiverID uuid.UUID) (int, error) {
	n := 0
	for _, req := range r.reqs {
		if req.ReceiverID == receiverID && req.Status == domain.InterestPending {
			n++
		}
	}
	return n, nil
}

var errFake = errors.New("smtp unavailable")

// fakeMailer records outbound mail and can be told to fail.
type fakeMailer struct {
	verifications []string
	interests     []string
	fail          bool
}

func (m *fakeMailer) SendVerificationEmail(to, code string) error {
	if m.fail {
		return errFake
	}
	m.verifications = append(m.verifications, to+":"+code)
	return nil
}

func (m *fakeMailer) SendInterestNotification(to, _, kind string, _ *string) error {
	if m.fail {
		return errFake
	}
	m.interests = append(m.interests, to+":"+kind)
	return nil
}

type fakeNotifier struct {
	created  []*domain.InterestRequest
	resolved []*domain.InterestRequest
	counts   []int
}

func (n *fakeNotifier) InterestCreated(req *domain.InterestRequest, pendingCount int) {
	n.created = append(n.created, req)
	n.counts = append(n.counts, pendingCount)
}

func (n *fakeNotifier) InterestResolved(req *domain.InterestRequest) {
	n.resolved = append(n.resolved, req)
}
