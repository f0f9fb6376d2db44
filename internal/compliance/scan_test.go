package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanExcessiveExperience(t *testing.T) {
	flags := Scan("Bidders need 25 years of experience in the field.")
	assert.Equal(t, []string{"Excessive experience requirement: 25 years"}, flags)
}

func TestScanModerateExperienceAllowed(t *testing.T) {
	assert.Empty(t, Scan("Bidders need 10 years of experience in the field."))
}

func TestScanCertificationAndBrand(t *testing.T) {
	flags := Scan("Staff must be certified by AcmeCorp. We will only accept the Acme brand.")
	assert.Contains(t, flags, "Specific certification requirement")
	assert.Contains(t, flags, "Brand restriction")
	assert.Len(t, flags, 2)
}

func TestScanDedupesFlags(t *testing.T) {
	text := "Must be certified by VendorA. Must be certified by VendorB."
	flags := Scan(text)
	assert.Equal(t, []string{"Specific certification requirement"}, flags)
}

func TestScanCleanText(t *testing.T) {
	assert.Empty(t, Scan("We need monthly reports and a final presentation."))
}
