package snss

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappa/open-tab-tracker/internal/models"
)

func TestParse_EmptyLog(t *testing.T) {
	b := newBuilder(1)

	result, err := Parse(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	assert.Empty(t, result.Windows)
}

func TestParse_OneTabOneNav(t *testing.T) {
	b := newBuilder(1).
		record(cmdSetTabWindow, recSetTabWindow(1, 42)).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(42, 0, "https://a", "A")).
		record(cmdSetSelectedNavigationIndex, recSetSelectedNavigationIndex(42, 0))

	result, err := Parse(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	require.Len(t, result.Windows, 1)

	win := result.Windows[0]
	assert.False(t, win.Active)
	assert.False(t, win.Deleted)
	require.Len(t, win.Tabs, 1)

	tab := win.Tabs[0]
	assert.True(t, tab.Active)
	assert.Equal(t, "https://a", tab.URL)
	assert.Equal(t, "A", tab.Title)
	assert.Equal(t, "", tab.Group)
	assert.False(t, tab.Deleted)
	assert.Equal(t, []models.ResultHistoryItem{{URL: "https://a", Title: "A"}}, tab.History)
}

func TestParse_ClosedTabDoesNotAdvanceActiveIndex(t *testing.T) {
	b := newBuilder(1).
		record(cmdSetTabWindow, recSetTabWindow(1, 10)).
		record(cmdSetTabIndexInWindow, recSetTabIndexInWindow(10, 0)).
		record(cmdSetTabWindow, recSetTabWindow(1, 20)).
		record(cmdSetTabIndexInWindow, recSetTabIndexInWindow(20, 1)).
		record(cmdSetTabWindow, recSetTabWindow(1, 30)).
		record(cmdSetTabIndexInWindow, recSetTabIndexInWindow(30, 2)).
		record(cmdTabClosed, recTabClosed(20)).
		record(cmdSetSelectedTabInIndex, recSetSelectedTabInIndex(1, 1))

	result, err := Parse(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	require.Len(t, result.Windows, 1)
	require.Len(t, result.Windows[0].Tabs, 3)

	tabs := result.Windows[0].Tabs
	assert.False(t, tabs[0].Active) // visible idx 0
	assert.False(t, tabs[1].Active) // deleted, forced false regardless of activeTabIdx
	assert.True(t, tabs[1].Deleted)
	assert.True(t, tabs[2].Active) // visible idx 1 (deleted tab doesn't consume a slot)

	activeCount := 0
	for _, tb := range tabs {
		if tb.Active {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestParse_GroupBindingPrecedesNaming(t *testing.T) {
	b := newBuilder(1).
		record(cmdSetTabGroup, recSetTabGroup(5, 0xAAAA, 0xBBBB)).
		record(cmdSetTabGroupMetadata2, recSetTabGroupMetadata2(0xAAAA, 0xBBBB, "Work"))

	result, err := Parse(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	require.Len(t, result.Windows, 1) // implicit window 0
	require.Len(t, result.Windows[0].Tabs, 1)
	assert.Equal(t, "Work", result.Windows[0].Tabs[0].Group)
}

func TestParse_UTF16Title(t *testing.T) {
	b := newBuilder(1).
		record(cmdSetTabWindow, recSetTabWindow(1, 1)).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(1, 0, "https://x", "héllo"))

	result, err := Parse(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	require.Len(t, result.Windows, 1)
	require.Len(t, result.Windows[0].Tabs, 1)
	assert.Equal(t, "héllo", result.Windows[0].Tabs[0].History[0].Title)
}

func TestParse_BadMagic(t *testing.T) {
	raw := []byte("XXXX")
	raw = append(raw, u32le(1)...)

	_, err := Parse(bytes.NewReader(raw))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadMagic))
}

func TestParse_UnsupportedVersion(t *testing.T) {
	b := newBuilder(2)

	_, err := Parse(bytes.NewReader(b.bytes()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))
}

func TestParse_UnknownOpcodeTolerance(t *testing.T) {
	base := newBuilder(1).
		record(cmdSetTabWindow, recSetTabWindow(1, 42)).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(42, 0, "https://a", "A")).
		record(cmdSetSelectedNavigationIndex, recSetSelectedNavigationIndex(42, 0))

	withUnknown := newBuilder(1).
		record(cmdSetTabWindow, recSetTabWindow(1, 42)).
		record(200, []byte{1, 2, 3, 4, 5}).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(42, 0, "https://a", "A")).
		record(cmdSetSelectedNavigationIndex, recSetSelectedNavigationIndex(42, 0))

	want, err := Parse(bytes.NewReader(base.bytes()))
	require.NoError(t, err)
	got, err := Parse(bytes.NewReader(withUnknown.bytes()))
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestParse_TruncatedFieldInsideKnownOpcode(t *testing.T) {
	b := newBuilder(1).
		record(cmdSetTabWindow, u32le(1)) // missing the tab-id field

	_, err := Parse(bytes.NewReader(b.bytes()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedField))
}

func TestParse_TruncatedPayloadIsHardError(t *testing.T) {
	raw := append([]byte{}, newBuilder(1).bytes()...)
	raw = append(raw, byte(9), byte(0)) // declares an 8-byte payload (+1 type byte)
	raw = append(raw, cmdSetTabWindow)
	raw = append(raw, u32le(1)...) // only 4 of the promised 8 payload bytes follow

	_, err := Parse(bytes.NewReader(raw))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedFrame))
}

func TestParse_TruncatedSizeHeaderAtEOFIsCleanTermination(t *testing.T) {
	raw := append([]byte{}, newBuilder(1).bytes()...)
	raw = append(raw, 0x05) // half of a size header, then nothing

	result, err := Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Empty(t, result.Windows)
}

func TestParse_CurrentHistoryIdxNotFound(t *testing.T) {
	b := newBuilder(1).
		record(cmdSetTabWindow, recSetTabWindow(1, 1)).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(1, 0, "https://a", "A")).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(1, 1, "https://b", "B")).
		record(cmdSetSelectedNavigationIndex, recSetSelectedNavigationIndex(1, 99))

	result, err := Parse(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	tab := result.Windows[0].Tabs[0]
	assert.Equal(t, "", tab.URL)
	assert.Equal(t, "", tab.Title)
	assert.Len(t, tab.History, 2)
}

func TestParse_DeletedWindowAndTabAreKeptInResult(t *testing.T) {
	b := newBuilder(1).
		record(cmdSetTabWindow, recSetTabWindow(1, 1)).
		record(cmdWindowClosed, recWindowClosed(1))

	result, err := Parse(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	require.Len(t, result.Windows, 1)
	assert.True(t, result.Windows[0].Deleted)
	require.Len(t, result.Windows[0].Tabs, 1)
}

func TestParse_RoundTripDeterminism(t *testing.T) {
	raw := newBuilder(1).
		record(cmdSetTabWindow, recSetTabWindow(1, 1)).
		record(cmdSetTabWindow, recSetTabWindow(2, 2)).
		record(cmdSetActiveWindow, recSetActiveWindow(2)).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(1, 0, "https://a", "A")).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(2, 0, "https://b", "B")).
		bytes()

	first, err := Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	second, err := Parse(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParse_HistorySortedAscendingNoDuplicates(t *testing.T) {
	b := newBuilder(1).
		record(cmdSetTabWindow, recSetTabWindow(1, 1)).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(1, 2, "https://c", "C")).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(1, 0, "https://a", "A")).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(1, 1, "https://b", "B")).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(1, 0, "https://a2", "A2")).
		// History is emitted only up to the current entry, so point it at the
		// last index to see every entry.
		record(cmdSetSelectedNavigationIndex, recSetSelectedNavigationIndex(1, 2))

	result, err := Parse(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	hist := result.Windows[0].Tabs[0].History
	require.Len(t, hist, 3)
	assert.Equal(t, "https://a2", hist[0].URL) // overwritten, not duplicated
	assert.Equal(t, "https://b", hist[1].URL)
	assert.Equal(t, "https://c", hist[2].URL)
}

func TestParse_AtMostOneActiveTabPerWindow(t *testing.T) {
	b := newBuilder(1).
		record(cmdSetTabWindow, recSetTabWindow(1, 1)).
		record(cmdSetTabIndexInWindow, recSetTabIndexInWindow(1, 0)).
		record(cmdSetTabWindow, recSetTabWindow(1, 2)).
		record(cmdSetTabIndexInWindow, recSetTabIndexInWindow(2, 1)).
		record(cmdSetSelectedTabInIndex, recSetSelectedTabInIndex(1, 5)) // out of range: no tab matches

	result, err := Parse(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	active := 0
	for _, tb := range result.Windows[0].Tabs {
		if tb.Active {
			active++
		}
	}
	assert.LessOrEqual(t, active, 1)
}

func TestParse_WindowOrderFollowsFirstReference(t *testing.T) {
	b := newBuilder(1).
		record(cmdSetTabWindow, recSetTabWindow(7, 70)).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(70, 0, "https://seven", "")).
		record(cmdSetTabWindow, recSetTabWindow(3, 30)).
		record(cmdUpdateTabNavigation, recUpdateTabNavigation(30, 0, "https://three", ""))

	result, err := Parse(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	require.Len(t, result.Windows, 2)
	assert.Equal(t, "https://seven", result.Windows[0].Tabs[0].History[0].URL)
	assert.Equal(t, "https://three", result.Windows[1].Tabs[0].History[0].URL)
}

func TestParse_WindowCountMatchesDistinctWindowIDs(t *testing.T) {
	b := newBuilder(1).
		record(cmdSetTabWindow, recSetTabWindow(1, 1)).
		record(cmdSetTabWindow, recSetTabWindow(2, 2)).
		record(cmdWindowClosed, recWindowClosed(3))

	result, err := Parse(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	assert.Len(t, result.Windows, 3)
}
