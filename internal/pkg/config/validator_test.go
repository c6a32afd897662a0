package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule(t *testing.T) {
	for _, s := range []string{"*/30 * * * *", "0 6 * * *", "30 9 * * 1-5", "0 */6 * * *"} {
		assert.NoError(t, ValidateCronSchedule(s), s)
	}
	for _, s := range []string{"", "* * *", "61 * * * *", "@every 5m", "0 0 * * * *"} {
		assert.Error(t, ValidateCronSchedule(s), s)
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.NoError(t, ValidateTimezone("Asia/Dubai"))
	assert.Error(t, ValidateTimezone(""))
	assert.Error(t, ValidateTimezone("Mars/Olympus"))
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration(time.Minute, time.Second, time.Hour))
	assert.NoError(t, ValidateDuration(time.Second, time.Second, time.Hour))
	assert.Error(t, ValidateDuration(time.Millisecond, time.Second, time.Hour))
	assert.Error(t, ValidateDuration(2*time.Hour, time.Second, time.Hour))
	assert.Error(t, ValidateDuration(time.Minute, time.Hour, time.Second))
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Nanosecond))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(5, 1, 10))
	assert.NoError(t, ValidateIntRange(1, 1, 1))
	assert.Error(t, ValidateIntRange(0, 1, 10))
	assert.Error(t, ValidateIntRange(11, 1, 10))
	assert.Error(t, ValidateIntRange(5, 10, 1))
}
