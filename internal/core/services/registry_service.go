package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/graceway/travel_accounting/internal/apperrors"
	"github.com/graceway/travel_accounting/internal/core/domain"
	portsrepo "github.com/graceway/travel_accounting/internal/core/ports/repositories"
	portssvc "github.com/graceway/travel_accounting/internal/core/ports/services"
	"github.com/graceway/travel_accounting/internal/dto"
)

var (
	ErrCodePrefixMismatch = fmt.Errorf("%w: account code prefix does not match the derived category", apperrors.ErrValidation)
	ErrCategoryRequired   = fmt.Errorf("%w: category is required for root accounts", apperrors.ErrValidation)
	ErrParentCycle        = fmt.Errorf("%w: an account cannot be its own ancestor", apperrors.ErrValidation)
)

const chartCacheKey = "chart"

// registryService owns the chart-of-accounts tree. The full chart is small
// (hundreds of rows) and read-heavy, so reads go through a short-lived cache
// that every mutation invalidates.
type registryService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	chartCache  *cache.Cache
}

// NewRegistryService creates the account registry. cacheTTL bounds how stale
// a tree read may be when another process writes to the same store.
func NewRegistryService(accountRepo portsrepo.AccountRepository, cacheTTL time.Duration) portssvc.AccountRegistrySvc {
	return &registryService{
		accountRepo: accountRepo,
		chartCache:  cache.New(cacheTTL, 2*cacheTTL),
	}
}

var _ portssvc.AccountRegistrySvc = (*registryService)(nil)

// loadChart returns the full chart as a flat slice ordered by code, from
// cache when fresh.
func (s *registryService) loadChart(ctx context.Context) ([]domain.Account, error) {
	if cached, found := s.chartCache.Get(chartCacheKey); found {
		return cached.([]domain.Account), nil
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts")
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}

	s.chartCache.SetDefault(chartCacheKey, accounts)
	return accounts, nil
}

func (s *registryService) invalidateChart() {
	s.chartCache.Delete(chartCacheKey)
}

// chartIndex builds the flat map keyed by id used for ancestry walks.
func chartIndex(accounts []domain.Account) map[string]domain.Account {
	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}
	return byID
}

// GetTree returns the full forest of root accounts with children attached.
func (s *registryService) GetTree(ctx context.Context) ([]*domain.AccountNode, error) {
	accounts, err := s.loadChart(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildAccountForest(accounts), nil
}

// GetByCategory returns accounts of one category ordered by code.
func (s *registryService) GetByCategory(ctx context.Context, category domain.AccountCategory, includeInactive bool) ([]domain.Account, error) {
	accounts, err := s.loadChart(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Account, 0)
	for _, acc := range accounts {
		if acc.Category != category {
			continue
		}
		if !includeInactive && !acc.IsActive {
			continue
		}
		result = append(result, acc)
	}
	return result, nil
}

// GetChildren returns the direct children of an account ordered by code.
func (s *registryService) GetChildren(ctx context.Context, parentAccountID string, includeInactive bool) ([]domain.Account, error) {
	accounts, err := s.loadChart(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Account, 0)
	for _, acc := range accounts {
		if acc.ParentAccountID != parentAccountID {
			continue
		}
		if !includeInactive && !acc.IsActive {
			continue
		}
		result = append(result, acc)
	}
	return result, nil
}

// GetAccountByID retrieves one account.
func (s *registryService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByCode retrieves one account by its hierarchical code.
func (s *registryService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *registryService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// rootAncestor walks the parent chain of acc to its root.
func rootAncestor(byID map[string]domain.Account, acc domain.Account) domain.Account {
	cur := acc
	for cur.ParentAccountID != "" {
		parent, ok := byID[cur.ParentAccountID]
		if !ok {
			break
		}
		cur = parent
	}
	return cur
}

// CreateAccount creates an account under an optional parent. Category and
// code prefix are derived from the parent's root ancestor; for root accounts
// the request's category decides the prefix. A missing code is auto-assigned
// as the next unused sibling code.
func (s *registryService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	accounts, err := s.loadChart(ctx)
	if err != nil {
		return nil, err
	}
	byID := chartIndex(accounts)

	var parent *domain.Account
	category := domain.AccountCategory(req.Category)
	level := 1

	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentAcc, ok := byID[*req.ParentAccountID]
		if !ok {
			return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, *req.ParentAccountID)
		}
		parent = &parentAcc
		level = parent.Level + 1

		// The root ancestor fixes the category for the entire subtree.
		derived := rootAncestor(byID, parentAcc).Category
		if req.Category != "" && category != derived {
			return nil, fmt.Errorf("%w: requested category %s disagrees with parent subtree category %s",
				apperrors.ErrValidation, category, derived)
		}
		category = derived
	} else {
		if !category.IsValid() {
			return nil, ErrCategoryRequired
		}
	}

	code := ""
	if req.Code != nil && *req.Code != "" {
		code = *req.Code
		if got, ok := domain.CategoryForCode(code); !ok || got != category {
			return nil, ErrCodePrefixMismatch
		}
		if parent != nil && !strings.HasPrefix(code, parent.Code+".") {
			return nil, fmt.Errorf("%w: code %s does not extend parent code %s", apperrors.ErrValidation, code, parent.Code)
		}
		for _, acc := range accounts {
			if acc.Code == code {
				return nil, fmt.Errorf("%w: account code %s already in use", apperrors.ErrDuplicate, code)
			}
		}
	} else {
		code = generateAccountCode(accounts, parent, category)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Code:           code,
		Name:           req.Name,
		NameEn:         req.NameEn,
		Category:       category,
		Level:          level,
		OpeningBalance: req.OpeningBalance,
		IsActive:       true,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if parent != nil {
		account.ParentAccountID = parent.AccountID
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, err
	}
	s.invalidateChart()

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// generateAccountCode picks the next unused code. Children get
// "<parent>.<n>" with n one past the highest existing sibling suffix; roots
// get the next free integer under the category prefix, starting at "X000".
func generateAccountCode(accounts []domain.Account, parent *domain.Account, category domain.AccountCategory) string {
	if parent != nil {
		maxSuffix := 0
		prefix := parent.Code + "."
		for _, acc := range accounts {
			if acc.ParentAccountID != parent.AccountID {
				continue
			}
			rest := strings.TrimPrefix(acc.Code, prefix)
			parts := strings.Split(rest, ".")
			if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil && n > maxSuffix {
				maxSuffix = n
			}
		}
		return fmt.Sprintf("%s%d", prefix, maxSuffix+1)
	}

	prefix := category.CodePrefix()
	maxCode := 0
	for _, acc := range accounts {
		if acc.ParentAccountID != "" || !strings.HasPrefix(acc.Code, prefix) {
			continue
		}
		if n, err := strconv.Atoi(acc.Code); err == nil && n > maxCode {
			maxCode = n
		}
	}
	if maxCode == 0 {
		return prefix + "000"
	}
	return strconv.Itoa(maxCode + 1)
}

// UpdateAccount applies in-place changes. Re-parenting is validated against
// the cycle guard and must stay inside the same root category; levels of the
// moved subtree are recomputed.
func (s *registryService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Account not found for update", slog.String("account_id", accountID))
		} else {
			s.LogError(ctx, err, "Failed to find account for update", slog.String("account_id", accountID))
		}
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.NameEn != nil {
		account.NameEn = *req.NameEn
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if req.Notes != nil {
		account.Notes = *req.Notes
		updated = true
	}

	var movedSubtree []domain.Account
	if req.ParentAccountID != nil && *req.ParentAccountID != account.ParentAccountID {
		subtree, err := s.reparent(ctx, account, *req.ParentAccountID)
		if err != nil {
			return nil, err
		}
		movedSubtree = subtree
		updated = true
	}

	if !updated {
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	for _, desc := range movedSubtree {
		desc.LastUpdatedAt = now
		desc.LastUpdatedBy = userID
		if err := s.accountRepo.UpdateAccount(ctx, desc); err != nil {
			s.LogError(ctx, err, "Failed to update descendant level", slog.String("account_id", desc.AccountID))
			return nil, err
		}
	}
	s.invalidateChart()

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// reparent validates a parent change and recomputes the levels of the moved
// subtree. Returns the descendants whose levels changed.
func (s *registryService) reparent(ctx context.Context, account *domain.Account, newParentID string) ([]domain.Account, error) {
	accounts, err := s.loadChart(ctx)
	if err != nil {
		return nil, err
	}
	byID := chartIndex(accounts)

	newLevel := 1
	if newParentID != "" {
		if newParentID == account.AccountID || domain.IsDescendant(byID, newParentID, account.AccountID) {
			return nil, ErrParentCycle
		}
		parent, ok := byID[newParentID]
		if !ok {
			return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, newParentID)
		}
		if rootAncestor(byID, parent).Category != account.Category {
			return nil, fmt.Errorf("%w: cannot move account across categories", apperrors.ErrValidation)
		}
		newLevel = parent.Level + 1
	}

	levelDelta := newLevel - account.Level
	account.ParentAccountID = newParentID
	account.Level = newLevel
	if levelDelta == 0 {
		return nil, nil
	}

	// Shift the whole subtree by the same delta, breadth-first.
	childrenByParent := make(map[string][]domain.Account)
	for _, acc := range accounts {
		if acc.ParentAccountID != "" {
			childrenByParent[acc.ParentAccountID] = append(childrenByParent[acc.ParentAccountID], acc)
		}
	}

	var moved []domain.Account
	queue := []string{account.AccountID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range childrenByParent[cur] {
			child.Level += levelDelta
			moved = append(moved, child)
			queue = append(queue, child.AccountID)
		}
	}
	sort.Slice(moved, func(i, j int) bool { return moved[i].Code < moved[j].Code })
	return moved, nil
}

// DeleteAccount removes an account unless children or journal lines depend on it.
func (s *registryService) DeleteAccount(ctx context.Context, accountID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	children, err := s.accountRepo.CountChildren(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count child accounts", slog.String("account_id", accountID))
		return err
	}
	if children > 0 {
		return fmt.Errorf("%w: account has %d child accounts", apperrors.ErrReferentialIntegrity, children)
	}

	lines, err := s.accountRepo.CountJournalLines(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count journal lines for account", slog.String("account_id", accountID))
		return err
	}
	if lines > 0 {
		return fmt.Errorf("%w: account is referenced by %d journal lines", apperrors.ErrReferentialIntegrity, lines)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	s.invalidateChart()

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
