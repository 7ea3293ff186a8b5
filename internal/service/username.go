package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ejay-detera/orgspace/common"
	"github.com/ejay-detera/orgspace/internal/store"
)

// UsernameAllocator picks the first free username derived from a name or email.
type UsernameAllocator struct {
	users store.UserStore
}

func NewUsernameAllocator(users store.UserStore) *UsernameAllocator {
	return &UsernameAllocator{users: users}
}

// Allocate returns base if unused, otherwise base1, base2, ... in order.
// The unique index on users.username still decides under concurrency.
func (a *UsernameAllocator) Allocate(ctx context.Context, name, email string) (string, error) {
	base := common.UsernameBase(name, email)

	taken, err := a.users.ListUsernamesWithPrefix(ctx, base)
	if err != nil {
		return "", fmt.Errorf("listing usernames like %q: %w", base, err)
	}

	return nextFreeUsername(base, taken), nil
}

func nextFreeUsername(base string, taken []string) string {
	used := make(map[string]struct{}, len(taken))
	for _, u := range taken {
		used[u] = struct{}{}
	}

	if _, ok := used[base]; !ok {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + strconv.Itoa(i)
		if _, ok := used[candidate]; !ok {
			return candidate
		}
	}
}
