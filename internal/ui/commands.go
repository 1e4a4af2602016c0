package ui

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calebwray/portal/internal/catalog"
	"github.com/calebwray/portal/internal/query"
	"github.com/calebwray/portal/internal/viewstate"
)

// Messages carried back into the update loop. Every fetch result is
// tagged with its query key so responses for keys the user has already
// navigated away from are dropped.

type listResultMsg struct {
	key query.Key
	res query.Result
}

type detailResultMsg struct {
	key query.Key
	res query.Result
}

type locationResultMsg struct {
	key query.Key
	res query.Result
}

type episodesResultMsg struct {
	key query.Key
	res query.Result
}

type compareResultMsg struct {
	slot int // 0 = left, 1 = right
	key  query.Key
	res  query.Result
}

type favoritesResultMsg struct {
	key query.Key
	res query.Result
}

type loginResultMsg struct {
	ok  bool
	err error
}

type logoutMsg struct{ err error }

type debounceMsg struct{ seq int }

// Cache key construction. Sort and order are deliberately absent from the
// list key: sorting is client-side and must not cause refetches.

func listKey(p viewstate.Params) query.Key {
	return query.Key{Kind: "characters", Page: p.Page, Search: p.Search}
}

func characterKey(idOrURL string) query.Key {
	return query.Key{Kind: "character", IDs: catalog.ExtractID(idOrURL)}
}

func locationKey(idOrURL string) query.Key {
	return query.Key{Kind: "location", IDs: catalog.ExtractID(idOrURL)}
}

func episodesKey(urls []string) query.Key {
	ids := make([]string, 0, len(urls))
	for _, u := range urls {
		if id := catalog.ExtractID(u); id != "" {
			ids = append(ids, id)
		}
	}
	return query.BatchKey("episodes", ids)
}

func favoritesKey(ids []int) query.Key {
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, strconv.Itoa(id))
	}
	return query.BatchKey("favorite-characters", strs)
}

// resolve picks Resolve or Retry: retry is the user-facing "try again"
// action scoped to exactly one failed query.
func (m Model) resolve(key query.Key, opts query.Options, force bool, fetch query.FetchFunc) query.Result {
	if force {
		return m.cache.Retry(m.ctx, key, opts, fetch)
	}
	return m.cache.Resolve(m.ctx, key, opts, fetch)
}

func (m Model) fetchListCmd(p viewstate.Params, force bool) tea.Cmd {
	key := listKey(p)
	return func() tea.Msg {
		res := m.resolve(key, query.Primary, force, func(ctx context.Context) (any, error) {
			page, err := m.client.ListCharacters(ctx, p.Page, p.Search)
			if err != nil {
				return nil, err
			}
			return page, nil
		})
		return listResultMsg{key: key, res: res}
	}
}

func (m Model) fetchDetailCmd(idOrURL string, force bool) tea.Cmd {
	key := characterKey(idOrURL)
	return func() tea.Msg {
		res := m.resolve(key, query.Primary, force, func(ctx context.Context) (any, error) {
			ch, err := m.client.GetCharacter(ctx, idOrURL)
			if err != nil {
				return nil, err
			}
			return ch, nil
		})
		return detailResultMsg{key: key, res: res}
	}
}

// fetchLocationCmd is an enrichment query: no automatic retries, manual
// retry only.
func (m Model) fetchLocationCmd(locationURL string, force bool) tea.Cmd {
	key := locationKey(locationURL)
	return func() tea.Msg {
		res := m.resolve(key, query.Enrichment, force, func(ctx context.Context) (any, error) {
			loc, err := m.client.GetLocation(ctx, locationURL)
			if err != nil {
				return nil, err
			}
			return loc, nil
		})
		return locationResultMsg{key: key, res: res}
	}
}

// fetchEpisodesCmd is an enrichment query over the character's episode
// reference list.
func (m Model) fetchEpisodesCmd(urls []string, force bool) tea.Cmd {
	key := episodesKey(urls)
	return func() tea.Msg {
		res := m.resolve(key, query.Enrichment, force, func(ctx context.Context) (any, error) {
			eps, err := m.client.GetEpisodesBatch(ctx, urls)
			if err != nil {
				return nil, err
			}
			return eps, nil
		})
		return episodesResultMsg{key: key, res: res}
	}
}

func (m Model) fetchCompareCmd(slot int, id string, force bool) tea.Cmd {
	key := characterKey(id)
	return func() tea.Msg {
		res := m.resolve(key, query.Primary, force, func(ctx context.Context) (any, error) {
			ch, err := m.client.GetCharacter(ctx, id)
			if err != nil {
				return nil, err
			}
			return ch, nil
		})
		return compareResultMsg{slot: slot, key: key, res: res}
	}
}

func (m Model) fetchFavoritesCmd(ids []int, force bool) tea.Cmd {
	key := favoritesKey(ids)
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, strconv.Itoa(id))
	}
	return func() tea.Msg {
		res := m.resolve(key, query.Primary, force, func(ctx context.Context) (any, error) {
			chars, err := m.client.GetCharactersBatch(ctx, strs)
			if err != nil {
				return nil, err
			}
			return chars, nil
		})
		return favoritesResultMsg{key: key, res: res}
	}
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ok, err := m.session.Login(m.ctx, username, password)
		return loginResultMsg{ok: ok, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return logoutMsg{err: m.session.Logout()}
	}
}

// debounceCmd arms the search coalescing timer for one keystroke.
func (m Model) debounceCmd(seq int) tea.Cmd {
	return tea.Tick(m.debounce.Window(), func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}
