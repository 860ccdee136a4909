package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetworks/account-service/internal/core/domain"
	"github.com/fleetworks/account-service/internal/core/ports"
)

// --- stubs ---

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	nextID   int
	writes   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	if a.VerificationToken != nil {
		tok := *a.VerificationToken
		clone.VerificationToken = &tok
	}
	if a.ResetToken != nil {
		tok := *a.ResetToken
		clone.ResetToken = &tok
	}
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return nil, domain.ErrAccountExists
		}
	}
	r.nextID++
	r.writes++
	created := cloneAccount(account)
	created.ID = fmt.Sprintf("acct_%d", r.nextID)
	r.accounts[created.ID] = created
	return cloneAccount(created), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email && !a.Deleted {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := r.accounts[id]; ok && !a.Deleted {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByVerificationToken(_ context.Context, token string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.VerificationToken != nil && a.VerificationToken.Value == token && !a.Deleted {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) AdminFindByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := r.accounts[id]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Update(_ context.Context, id string, upd ports.AccountUpdate) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	r.writes++
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.Role != nil {
		a.Role = *upd.Role
	}
	if upd.PasswordHash != nil {
		a.PasswordHash = *upd.PasswordHash
	}
	if upd.Active != nil {
		a.Active = *upd.Active
	}
	if upd.Approved != nil {
		a.Approved = *upd.Approved
	}
	if upd.EmailVerified != nil {
		a.EmailVerified = *upd.EmailVerified
	}
	if upd.ClearVerificationToken {
		a.VerificationToken = nil
	} else if upd.VerificationToken != nil {
		tok := *upd.VerificationToken
		a.VerificationToken = &tok
	}
	if upd.ClearResetToken {
		a.ResetToken = nil
	} else if upd.ResetToken != nil {
		tok := *upd.ResetToken
		a.ResetToken = &tok
	}
	if upd.LastOTPRequestAt != nil {
		a.LastOTPRequestAt = *upd.LastOTPRequestAt
	}
	return nil
}

func (r *stubAccountRepo) SoftDelete(_ context.Context, id string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	r.writes++
	a.Deleted = true
	a.Active = false
	return nil
}

type stubMailQueue struct {
	jobs []ports.MailJob
}

func (q *stubMailQueue) Enqueue(job ports.MailJob) {
	q.jobs = append(q.jobs, job)
}

type stubLoginHistory struct {
	records []*domain.LoginRecord
}

func (h *stubLoginHistory) Append(_ context.Context, record *domain.LoginRecord) error {
	clone := *record
	h.records = append(h.records, &clone)
	return nil
}

func (h *stubLoginHistory) CloseOpen(_ context.Context, accountID string, at time.Time) error {
	for i := len(h.records) - 1; i >= 0; i-- {
		rec := h.records[i]
		if rec.AccountID == accountID && rec.Active {
			logout := at
			rec.LogoutAt = &logout
			rec.Active = false
			rec.SessionDurationSeconds = int64(at.Sub(rec.LoginAt) / time.Second)
			return nil
		}
	}
	return nil
}

type stubSessionStore struct {
	open map[string]bool
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{open: make(map[string]bool)}
}

func (s *stubSessionStore) Put(_ context.Context, accountID string, _ time.Duration) error {
	s.open[accountID] = true
	return nil
}

func (s *stubSessionStore) Drop(_ context.Context, accountID string) error {
	delete(s.open, accountID)
	return nil
}

// --- test harness ---

type authFixture struct {
	svc      *AuthService
	repo     *stubAccountRepo
	mail     *stubMailQueue
	history  *stubLoginHistory
	sessions *stubSessionStore
	clock    time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	f := &authFixture{
		repo:     newStubAccountRepo(),
		mail:     &stubMailQueue{},
		history:  &stubLoginHistory{},
		sessions: newStubSessionStore(),
		clock:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	auditor := NewAuditService(f.history, f.sessions, zerolog.Nop())
	auditor.now = func() time.Time { return f.clock }

	f.svc = NewAuthService(f.repo, issuer, auditor, f.mail, "http://localhost:8080", zerolog.Nop())
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func (f *authFixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func (f *authFixture) register(t *testing.T, email string) *domain.Account {
	t.Helper()
	account, err := f.svc.Register(context.Background(), email, "Passw0rd!", "Test User")
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return account
}

// approveAndVerify flips the gate flags directly, standing in for the admin
// approval and email verification steps.
func (f *authFixture) approveAndVerify(t *testing.T, id string) {
	t.Helper()
	yes := true
	err := f.repo.Update(context.Background(), id, ports.AccountUpdate{Approved: &yes, EmailVerified: &yes})
	if err != nil {
		t.Fatalf("approve account: %v", err)
	}
}

// --- registration ---

func TestRegister_CreatesPendingAccount(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")
	if account.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if !account.Active || account.Approved || account.EmailVerified {
		t.Fatalf("expected active=true approved=false email_verified=false, got %+v", account)
	}
	if account.Role != domain.RoleUser {
		t.Fatalf("self-registration must yield the standard role, got %s", account.Role)
	}
	if account.PasswordHash == "Passw0rd!" || !CheckPassword("Passw0rd!", account.PasswordHash) {
		t.Fatalf("password not hashed correctly")
	}
	if account.VerificationToken == nil || !account.VerificationToken.Live(f.clock) {
		t.Fatalf("expected a live verification token")
	}

	if len(f.mail.jobs) != 1 || f.mail.jobs[0].Kind != MailKindVerification {
		t.Fatalf("expected one verification mail, got %+v", f.mail.jobs)
	}
	if f.mail.jobs[0].To != "a@x.com" {
		t.Fatalf("mail sent to wrong recipient: %s", f.mail.jobs[0].To)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	f := newAuthFixture(t)

	f.register(t, "a@x.com")
	if _, err := f.svc.Register(context.Background(), "a@x.com", "Another1!", "Dup"); !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	f := newAuthFixture(t)

	if _, err := f.svc.Register(context.Background(), "a@x.com", "short", "A"); !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if f.repo.writes != 0 {
		t.Fatalf("weak password must not reach the store")
	}
}

// --- password login ---

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")
	f.approveAndVerify(t, account.ID)

	token, logged, err := f.svc.Login(context.Background(), "a@x.com", "Passw0rd!", "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || logged == nil || logged.ID != account.ID {
		t.Fatalf("unexpected login result: token=%q account=%+v", token, logged)
	}

	if len(f.history.records) != 1 {
		t.Fatalf("expected one login record, got %d", len(f.history.records))
	}
	rec := f.history.records[0]
	if rec.AccountID != account.ID || rec.IP != "10.0.0.1" || rec.UserAgent != "test-agent" || !rec.Active {
		t.Fatalf("unexpected login record: %+v", rec)
	}
	if !f.sessions.open[account.ID] {
		t.Fatalf("expected session marker")
	}
}

func TestLogin_WrongPasswordAndUnknownEmailAreIdentical(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")
	f.approveAndVerify(t, account.ID)

	_, _, errWrong := f.svc.Login(context.Background(), "a@x.com", "not-the-password", "", "")
	_, _, errUnknown := f.svc.Login(context.Background(), "ghost@x.com", "whatever1", "", "")

	if !errors.Is(errWrong, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Fatalf("error messages differ: %q vs %q", errWrong, errUnknown)
	}
}

func TestLogin_GateIsGeneric(t *testing.T) {
	f := newAuthFixture(t)

	// Unverified, unapproved, and deactivated accounts all produce the same
	// generic rejection on the password path.
	unverified := f.register(t, "unverified@x.com")

	approvedOnly := f.register(t, "approved@x.com")
	yes := true
	_ = f.repo.Update(context.Background(), approvedOnly.ID, ports.AccountUpdate{Approved: &yes})

	inactive := f.register(t, "inactive@x.com")
	f.approveAndVerify(t, inactive.ID)
	no := false
	_ = f.repo.Update(context.Background(), inactive.ID, ports.AccountUpdate{Active: &no})

	for _, email := range []string{"unverified@x.com", "approved@x.com", "inactive@x.com"} {
		_, _, err := f.svc.Login(context.Background(), email, "Passw0rd!", "", "")
		if !errors.Is(err, domain.ErrAccountNotAllowed) {
			t.Fatalf("%s: expected generic ErrAccountNotAllowed, got %v", email, err)
		}
	}

	// Flags are untouched by the failed attempts.
	stored, _ := f.repo.FindByID(context.Background(), unverified.ID)
	if stored.EmailVerified || stored.Approved {
		t.Fatalf("failed login must not mutate flags: %+v", stored)
	}
}

func TestLogin_SoftDeletedAccountInvisible(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")
	f.approveAndVerify(t, account.ID)
	if err := f.repo.SoftDelete(context.Background(), account.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	// Deleted accounts fall out of the lookup, so this is indistinguishable
	// from an unknown email.
	_, _, err := f.svc.Login(context.Background(), "a@x.com", "Passw0rd!", "", "")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// --- OTP login ---

func TestLoginWithOTP_SuccessAndDoubleConsumption(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")
	f.approveAndVerify(t, account.ID)

	if err := f.svc.RequestOTP(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	stored, _ := f.repo.FindByID(context.Background(), account.ID)
	otp := stored.ResetToken.Value

	token, _, err := f.svc.LoginWithOTP(context.Background(), "a@x.com", otp, "", "")
	if err != nil {
		t.Fatalf("LoginWithOTP: %v", err)
	}
	if token == "" {
		t.Fatalf("expected bearer token")
	}

	// Second consumption of the same code always fails.
	if _, _, err := f.svc.LoginWithOTP(context.Background(), "a@x.com", otp, "", ""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid on reuse, got %v", err)
	}
}

func TestLoginWithOTP_Expired(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")
	f.approveAndVerify(t, account.ID)
	_ = f.svc.RequestOTP(context.Background(), "a@x.com")
	stored, _ := f.repo.FindByID(context.Background(), account.ID)

	f.advance(6 * time.Minute)
	if _, _, err := f.svc.LoginWithOTP(context.Background(), "a@x.com", stored.ResetToken.Value, "", ""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired otp, got %v", err)
	}
}

func TestLoginWithOTP_ReportsSpecificGateError(t *testing.T) {
	f := newAuthFixture(t)

	// Verified but unapproved: the OTP path names the blocking flag.
	account := f.register(t, "a@x.com")
	yes := true
	_ = f.repo.Update(context.Background(), account.ID, ports.AccountUpdate{EmailVerified: &yes})
	_ = f.svc.RequestOTP(context.Background(), "a@x.com")
	stored, _ := f.repo.FindByID(context.Background(), account.ID)

	_, _, err := f.svc.LoginWithOTP(context.Background(), "a@x.com", stored.ResetToken.Value, "", "")
	if !errors.Is(err, domain.ErrAccountNotApproved) {
		t.Fatalf("expected ErrAccountNotApproved, got %v", err)
	}
}

// --- email verification ---

func TestVerifyEmail_ConsumesToken(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")
	stored, _ := f.repo.FindByID(context.Background(), account.ID)
	token := stored.VerificationToken.Value

	if err := f.svc.VerifyEmail(context.Background(), token); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	stored, _ = f.repo.FindByID(context.Background(), account.ID)
	if !stored.EmailVerified {
		t.Fatalf("expected email_verified=true")
	}
	if stored.Approved {
		t.Fatalf("verification must not flip approved")
	}
	if stored.VerificationToken != nil {
		t.Fatalf("token must be destroyed on consumption")
	}

	// Destroyed token cannot be replayed.
	if err := f.svc.VerifyEmail(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid on reuse, got %v", err)
	}
}

func TestVerifyEmail_Expired(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")
	stored, _ := f.repo.FindByID(context.Background(), account.ID)

	f.advance(25 * time.Hour)
	if err := f.svc.VerifyEmail(context.Background(), stored.VerificationToken.Value); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

// --- resend verification ---

func TestResendVerification_RateLimit(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "a@x.com")

	if err := f.svc.ResendVerification(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("first resend: %v", err)
	}

	f.advance(30 * time.Second)
	if err := f.svc.ResendVerification(context.Background(), "a@x.com"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited within 60s, got %v", err)
	}

	f.advance(31 * time.Second)
	if err := f.svc.ResendVerification(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("resend after interval: %v", err)
	}
}

func TestResendVerification_OverwritesToken(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")
	before, _ := f.repo.FindByID(context.Background(), account.ID)

	if err := f.svc.ResendVerification(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("ResendVerification: %v", err)
	}

	after, _ := f.repo.FindByID(context.Background(), account.ID)
	if after.VerificationToken.Value == before.VerificationToken.Value {
		t.Fatalf("resend must overwrite the previous token")
	}
	// The superseded token is dead even though it had time left.
	if err := f.svc.VerifyEmail(context.Background(), before.VerificationToken.Value); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected old token to be invalid, got %v", err)
	}
}

func TestResendVerification_UnknownOrVerifiedIsSilent(t *testing.T) {
	f := newAuthFixture(t)

	if err := f.svc.ResendVerification(context.Background(), "ghost@x.com"); err != nil {
		t.Fatalf("unknown email must report success, got %v", err)
	}

	account := f.register(t, "a@x.com")
	f.approveAndVerify(t, account.ID)
	mailsBefore := len(f.mail.jobs)
	if err := f.svc.ResendVerification(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("verified account must report success, got %v", err)
	}
	if len(f.mail.jobs) != mailsBefore {
		t.Fatalf("no mail may be sent for an already verified account")
	}
}

// --- password reset ---

func TestForgotPassword_UnknownEmailWritesNothing(t *testing.T) {
	f := newAuthFixture(t)

	writesBefore := f.repo.writes
	mailsBefore := len(f.mail.jobs)

	if err := f.svc.ForgotPassword(context.Background(), "ghost@x.com"); err != nil {
		t.Fatalf("expected generic success, got %v", err)
	}
	if f.repo.writes != writesBefore {
		t.Fatalf("no store write may occur for an unknown email")
	}
	if len(f.mail.jobs) != mailsBefore {
		t.Fatalf("no mail may be sent for an unknown email")
	}
}

func TestResetPassword_Flow(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")
	if err := f.svc.ForgotPassword(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	stored, _ := f.repo.FindByID(context.Background(), account.ID)
	token := stored.ResetToken.Value

	if err := f.svc.ResetPassword(context.Background(), "a@x.com", token, "NewPassw0rd!"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	stored, _ = f.repo.FindByID(context.Background(), account.ID)
	if !CheckPassword("NewPassw0rd!", stored.PasswordHash) {
		t.Fatalf("password not updated")
	}
	if stored.ResetToken != nil {
		t.Fatalf("reset token must be destroyed on consumption")
	}

	if err := f.svc.ResetPassword(context.Background(), "a@x.com", token, "YetAnother1!"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid on reuse, got %v", err)
	}
}

func TestResetPassword_ExpiredTokenLeavesHashUnchanged(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")
	_ = f.svc.ForgotPassword(context.Background(), "a@x.com")
	stored, _ := f.repo.FindByID(context.Background(), account.ID)
	token := stored.ResetToken.Value
	hashBefore := stored.PasswordHash

	f.advance(61 * time.Minute)
	if err := f.svc.ResetPassword(context.Background(), "a@x.com", token, "NewPassw0rd!"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}

	stored, _ = f.repo.FindByID(context.Background(), account.ID)
	if stored.PasswordHash != hashBefore {
		t.Fatalf("password hash must be unchanged after a failed reset")
	}
}

func TestResetPassword_WeakPassword(t *testing.T) {
	f := newAuthFixture(t)

	f.register(t, "a@x.com")
	_ = f.svc.ForgotPassword(context.Background(), "a@x.com")

	if err := f.svc.ResetPassword(context.Background(), "a@x.com", "whatever", "short"); !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

// --- change password ---

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")

	if err := f.svc.ChangePassword(context.Background(), account.ID, "wrong-current", "NewPassw0rd!"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	if err := f.svc.ChangePassword(context.Background(), account.ID, "Passw0rd!", "NewPassw0rd!"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	stored, _ := f.repo.FindByID(context.Background(), account.ID)
	if !CheckPassword("NewPassw0rd!", stored.PasswordHash) {
		t.Fatalf("password not updated")
	}
}

// --- full lifecycle scenario ---

func TestFullLifecycle(t *testing.T) {
	f := newAuthFixture(t)

	// Register: pending account.
	account := f.register(t, "a@x.com")
	if account.EmailVerified || account.Approved {
		t.Fatalf("fresh registration must be unverified and unapproved")
	}

	// Admin approves.
	yes := true
	if err := f.repo.Update(context.Background(), account.ID, ports.AccountUpdate{Approved: &yes}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// User verifies email with the mailed token.
	stored, _ := f.repo.FindByID(context.Background(), account.ID)
	if err := f.svc.VerifyEmail(context.Background(), stored.VerificationToken.Value); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	// Login now succeeds.
	token, _, err := f.svc.Login(context.Background(), "a@x.com", "Passw0rd!", "10.0.0.1", "agent")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected bearer token")
	}

	// Logout closes the history record with a non-negative duration.
	f.advance(42 * time.Second)
	f.svc.Logout(context.Background(), account.ID)

	rec := f.history.records[len(f.history.records)-1]
	if rec.Active || rec.LogoutAt == nil {
		t.Fatalf("expected closed login record, got %+v", rec)
	}
	if rec.SessionDurationSeconds != 42 {
		t.Fatalf("expected 42s session, got %d", rec.SessionDurationSeconds)
	}
	if f.sessions.open[account.ID] {
		t.Fatalf("session marker must be dropped on logout")
	}
}

// A new login supersedes the previous open record.
func TestRecordLogin_SupersedesOpenRecord(t *testing.T) {
	f := newAuthFixture(t)

	account := f.register(t, "a@x.com")
	f.approveAndVerify(t, account.ID)

	if _, _, err := f.svc.Login(context.Background(), "a@x.com", "Passw0rd!", "", ""); err != nil {
		t.Fatalf("first login: %v", err)
	}
	f.advance(10 * time.Second)
	if _, _, err := f.svc.Login(context.Background(), "a@x.com", "Passw0rd!", "", ""); err != nil {
		t.Fatalf("second login: %v", err)
	}

	if len(f.history.records) != 2 {
		t.Fatalf("expected two records, got %d", len(f.history.records))
	}
	if f.history.records[0].Active {
		t.Fatalf("first record must be closed by the second login")
	}
	if !f.history.records[1].Active {
		t.Fatalf("second record must be open")
	}
}
