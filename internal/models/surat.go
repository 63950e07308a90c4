package models

// Surat is a letter record with an approval workflow driven by the backend.
type Surat struct {
	ID        ID          `json:"id"`
	Nomor     string      `json:"nomor"`
	Perihal   string      `json:"perihal"`
	Jenis     SuratType   `json:"jenis"`
	Tanggal   string      `json:"tanggal"`
	Pihak     string      `json:"pihak"`
	Status    SuratStatus `json:"status"`
	File      string      `json:"file,omitempty"`
	Disposisi string      `json:"disposisi,omitempty"`
}

// SuratStatusUpdate is the body of a status change call.
type SuratStatusUpdate struct {
	Status    SuratStatus `json:"status"`
	Disposisi string      `json:"disposisi,omitempty"`
}
