package collector

import (
	"context"
	"testing"

	"github.com/silent-IM/private-dots/internal/models"
)

const netDevHeader = `Inter-|   Receive                                                |  Transmit
 face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed
`

func TestNetworkCollector_SingleInterface(t *testing.T) {
	src := newSources(t)
	writeFile(t, src.proc("net", "dev"), netDevHeader+
		"  eth0:     500       5    0    0    0     0          0         0      300       3    0    0    0     0       0          0\n")

	data, err := NewNetworkCollector(src).Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got := data.(models.Network)
	if got.RxTotal != 500 || got.TxTotal != 300 {
		t.Errorf("got %+v, want rx=500 tx=300", got)
	}
}

func TestNetworkCollector_SkipsLoopbackAndSums(t *testing.T) {
	src := newSources(t)
	writeFile(t, src.proc("net", "dev"), netDevHeader+
		"    lo: 9999999  100    0    0    0     0          0         0  9999999     100    0    0    0     0       0          0\n"+
		"  eth0: 1000 10 0 0 0 0 0 0 2000 20 0 0 0 0 0 0\n"+
		" wlan0:3000 30 0 0 0 0 0 0 4000 40 0 0 0 0 0 0\n"+
		" wg0: x 1 0 0 0 0 0 0 50 1 0 0 0 0 0 0\n"+
		" short: 1 2 3\n")

	data, err := NewNetworkCollector(src).Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got := data.(models.Network)
	if got.RxTotal != 4000 {
		t.Errorf("RxTotal = %d, want 4000", got.RxTotal)
	}
	if got.TxTotal != 6050 {
		t.Errorf("TxTotal = %d, want 6050", got.TxTotal)
	}
}

func TestNetworkCollector_MissingSource(t *testing.T) {
	if _, err := NewNetworkCollector(newSources(t)).Collect(context.Background()); err == nil {
		t.Error("expected error for missing /proc/net/dev")
	}
}
