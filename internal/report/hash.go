package report

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content-addressed hashing.
// Version suffix enables future algorithm migration.
const (
	DomainSource   = "derecord/source/v1"
	DomainManifest = "derecord/manifest/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SourceHash computes the content address of a source text. Text is NFC
// normalized first so the hash is stable across Unicode encoding forms of
// the same logical source.
func SourceHash(src string) string {
	return hashWithDomain(DomainSource, []byte(norm.NFC.String(src)))
}

// ManifestHash computes the content address of a manifest file's bytes.
func ManifestHash(data []byte) string {
	return hashWithDomain(DomainManifest, norm.NFC.Bytes(data))
}
