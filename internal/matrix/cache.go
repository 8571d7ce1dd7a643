package matrix

import "reflect"

// caseCache is the single-slot memo holding the last-built case object
// together with the identity-key projection that produced it. It is not
// synchronized: the helper is meant to be driven by one sequential test
// runner (see GetCase).
type caseCache struct {
	params    TestParameters
	value     interface{}
	populated bool
	logger    Logger
}

func newCaseCache(logger Logger) *caseCache {
	return &caseCache{logger: logger}
}

// get returns the cached case object, or nil if the cache is empty.
func (c *caseCache) get() interface{} {
	return c.value
}

// set overwrites the single slot with a new (key, case) pair. The key is
// deep-copied so later caller-side mutation cannot change what the cache
// compares against.
func (c *caseCache) set(params TestParameters, value interface{}) {
	c.logger.Debug("cache: storing new case for parameters %v\n", params)
	c.params = deepCopyParameters(params)
	c.value = value
	c.populated = true
}

// hasSameParams reports whether the cache holds a case built from exactly the
// given identity-key projection. Equality is structural, so list-typed
// parameter values compare element-wise.
func (c *caseCache) hasSameParams(params TestParameters) bool {
	res := c.populated && reflect.DeepEqual(c.params, params)
	if c.logger.IsDebugEnabled() {
		op := "!="
		if res {
			op = "=="
		}
		c.logger.Debug("cache: stored params %v %s %v\n", c.params, op, params)
	}
	return res
}
