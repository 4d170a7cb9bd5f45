package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// SheetCSV is a small published-sheet export used across packages.
const SheetCSV = `ID Tugas,Nama Tugas,Deadline,Kategori,Prioritas,Status,Deskripsi,Catatan
T1,Laporan bulanan,01/01/2024,Keuangan,Tinggi,Selesai,Rekap bulan Desember,
T2,Audit gudang,01/01/2030,Operasional,Sedang,Open,,Cek stok fisik
T3,Review kontrak,15/03/2024,Legal,Tinggi,Proses,Kontrak vendor A,
T4,Rapat evaluasi,bukan tanggal,Umum,Rendah,Open,Evaluasi Q1,
T5,Update SOP,20/03/2024,Operasional,Sedang,Proses,"SOP gudang, revisi 2",Menunggu approval
`

// StartCSVServer serves body as CSV and counts the requests it receives.
func StartCSVServer(t *testing.T, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

// Date returns midnight of the given day in UTC.
func Date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func Str(s string) *string {
	return &s
}

// Task builds a derived task the way the deriver would.
func Task(row int, id, status string, deadline *time.Time) model.Task {
	t := model.Task{
		Row:      row,
		ID:       id,
		Name:     "Task " + id,
		Deadline: deadline,
		Category: "General",
		Priority: "Sedang",
		Status:   status,
	}
	if deadline != nil {
		t.MonthName = Str(deadline.Month().String())
		t.Year = Str(deadline.Format("2006"))
	}
	return t
}

// WaitForCondition polls condition until it holds or timeout passes.
func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}
