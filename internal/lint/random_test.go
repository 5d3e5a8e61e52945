// # internal/lint/random_test.go
package lint

import "testing"

func TestRandomSample(t *testing.T) {
	diags := lintSource(t, "3.13", `
import random

def pick(items):
    return random.sample(items, 3)
`)
	assertCodes(t, diags, "consider-random-sample-sequence")
}

func TestRandomRandrange(t *testing.T) {
	diags := lintSource(t, "3.13", `
import random

def roll():
    return random.randrange(1, 7)
`)
	assertCodes(t, diags, "consider-random-randrange-integer-args")
}

func TestRandomShuffleSingleArg(t *testing.T) {
	diags := lintSource(t, "3.13", `
import random

def mix(items):
    random.shuffle(items)
`)
	assertCodes(t, diags)
}

func TestRandomShufflePositionalRandomArg(t *testing.T) {
	diags := lintSource(t, "3.13", `
import random

def mix(items, gen):
    random.shuffle(items, gen)
`)
	assertCodes(t, diags, "no-random-shuffle-random-param")
}

func TestRandomShuffleKeywordRandomArg(t *testing.T) {
	diags := lintSource(t, "3.13", `
import random

def mix(items, gen):
    random.shuffle(items, random=gen)
`)
	assertCodes(t, diags, "no-random-shuffle-random-param")
}

func TestRandomAliasResolved(t *testing.T) {
	diags := lintSource(t, "3.13", `
import random as rnd

def pick(items):
    return rnd.sample(items, 3)
`)
	assertCodes(t, diags, "consider-random-sample-sequence")
}

func TestRandomDeprecationsGatedByVersion(t *testing.T) {
	diags := lintSource(t, "3.9", `
import random

def pick(items):
    random.shuffle(items, None)
    return random.sample(items, 3)
`)
	assertCodes(t, diags)
}
