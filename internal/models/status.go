package models

import (
	"fmt"

	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

// StatusKind names one family of status values.
type StatusKind string

// Declared status kinds.
const (
	StatusKindSchool     StatusKind = "sekolah"
	StatusKindSurat      StatusKind = "surat"
	StatusKindSuratType  StatusKind = "jenis_surat"
	StatusKindArsip      StatusKind = "arsip"
	StatusKindEvent      StatusKind = "kegiatan"
	StatusKindAttendance StatusKind = "kehadiran"
	StatusKindReview     StatusKind = "reviu"
	StatusKindUser       StatusKind = "pengguna"
)

// Tone is the visual weight of a badge.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneInfo    Tone = "info"
	ToneNeutral Tone = "neutral"
)

// Badge is the display metadata of a status value.
type Badge struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

// SchoolStatus is the progress of a school against its revitalisation schedule.
type SchoolStatus string

const (
	SchoolOnTrack   SchoolStatus = "on-track"
	SchoolWarning   SchoolStatus = "warning"
	SchoolDelay     SchoolStatus = "delay"
	SchoolCompleted SchoolStatus = "completed"
)

// SuratStatus is the approval state of a letter.
type SuratStatus string

const (
	SuratDraft     SuratStatus = "draft"
	SuratMenunggu  SuratStatus = "menunggu_persetujuan"
	SuratDisetujui SuratStatus = "disetujui"
	SuratDitolak   SuratStatus = "ditolak"
	SuratSelesai   SuratStatus = "selesai"
)

// SuratType tells incoming letters from outgoing ones.
type SuratType string

const (
	SuratMasuk  SuratType = "masuk"
	SuratKeluar SuratType = "keluar"
)

// ArsipStatus is the processing state of an archived document.
type ArsipStatus string

const (
	ArsipDraft    ArsipStatus = "draft"
	ArsipDiterima ArsipStatus = "diterima"
	ArsipDitolak  ArsipStatus = "ditolak"
	ArsipSelesai  ArsipStatus = "selesai"
)

// EventStatus places an event relative to today.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

// AttendanceStatus records whether a participant attended an event.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "hadir"
	AttendanceAbsent  AttendanceStatus = "tidak_hadir"
	AttendanceExcused AttendanceStatus = "izin"
)

// ReviewStatus is the workflow state of a weekly review.
type ReviewStatus string

const (
	ReviewDraft     ReviewStatus = "draft"
	ReviewSubmitted ReviewStatus = "submitted"
	ReviewApproved  ReviewStatus = "approved"
)

var badgeTables = map[StatusKind][]Badge{
	StatusKindSchool: {
		{string(SchoolOnTrack), "Sesuai Jadwal", ToneSuccess},
		{string(SchoolWarning), "Perlu Perhatian", ToneWarning},
		{string(SchoolDelay), "Terlambat", ToneDanger},
		{string(SchoolCompleted), "Selesai", ToneInfo},
	},
	StatusKindSurat: {
		{string(SuratDraft), "Draft", ToneNeutral},
		{string(SuratMenunggu), "Menunggu Persetujuan", ToneWarning},
		{string(SuratDisetujui), "Disetujui", ToneSuccess},
		{string(SuratDitolak), "Ditolak", ToneDanger},
		{string(SuratSelesai), "Selesai", ToneInfo},
	},
	StatusKindSuratType: {
		{string(SuratMasuk), "Surat Masuk", ToneInfo},
		{string(SuratKeluar), "Surat Keluar", ToneNeutral},
	},
	StatusKindArsip: {
		{string(ArsipDraft), "Draft", ToneNeutral},
		{string(ArsipDiterima), "Diterima", ToneSuccess},
		{string(ArsipDitolak), "Ditolak", ToneDanger},
		{string(ArsipSelesai), "Selesai", ToneInfo},
	},
	StatusKindEvent: {
		{string(EventUpcoming), "Akan Datang", ToneInfo},
		{string(EventOngoing), "Berlangsung", ToneWarning},
		{string(EventCompleted), "Selesai", ToneSuccess},
	},
	StatusKindAttendance: {
		{string(AttendancePresent), "Hadir", ToneSuccess},
		{string(AttendanceAbsent), "Tidak Hadir", ToneDanger},
		{string(AttendanceExcused), "Izin", ToneWarning},
	},
	StatusKindReview: {
		{string(ReviewDraft), "Draft", ToneNeutral},
		{string(ReviewSubmitted), "Diajukan", ToneWarning},
		{string(ReviewApproved), "Disetujui", ToneSuccess},
	},
	StatusKindUser: {
		{string(UserStatusActive), "Aktif", ToneSuccess},
		{string(UserStatusInactive), "Nonaktif", ToneNeutral},
	},
}

// LookupBadge resolves a status value. Unknown kinds and values are validation errors.
func LookupBadge(kind StatusKind, value string) (Badge, error) {
	table, ok := badgeTables[kind]
	if !ok {
		return Badge{}, appErrors.Clone(appErrors.ErrInvalidStatus, fmt.Sprintf("jenis status %q tidak dikenal", kind))
	}
	for _, b := range table {
		if b.Value == value {
			return b, nil
		}
	}
	return Badge{}, appErrors.Clone(appErrors.ErrInvalidStatus, fmt.Sprintf("status %q tidak dikenal", value))
}

// StatusValues lists the declared values of a kind in display order.
func StatusValues(kind StatusKind) []Badge {
	table := badgeTables[kind]
	out := make([]Badge, len(table))
	copy(out, table)
	return out
}

// Badge resolves the display metadata of the value.
func (s SchoolStatus) Badge() (Badge, error)     { return LookupBadge(StatusKindSchool, string(s)) }
func (s SuratStatus) Badge() (Badge, error)      { return LookupBadge(StatusKindSurat, string(s)) }
func (s SuratType) Badge() (Badge, error)        { return LookupBadge(StatusKindSuratType, string(s)) }
func (s ArsipStatus) Badge() (Badge, error)      { return LookupBadge(StatusKindArsip, string(s)) }
func (s EventStatus) Badge() (Badge, error)      { return LookupBadge(StatusKindEvent, string(s)) }
func (s AttendanceStatus) Badge() (Badge, error) { return LookupBadge(StatusKindAttendance, string(s)) }
func (s ReviewStatus) Badge() (Badge, error)     { return LookupBadge(StatusKindReview, string(s)) }
func (s UserStatus) Badge() (Badge, error)       { return LookupBadge(StatusKindUser, string(s)) }

// Valid reports whether the surat status is declared.
func (s SuratStatus) Valid() bool {
	_, err := s.Badge()
	return err == nil
}

// Valid reports whether the review status is declared.
func (s ReviewStatus) Valid() bool {
	_, err := s.Badge()
	return err == nil
}
