package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstRuneCase(t *testing.T) {
	assert.Equal(t, "Order", UpperFirst("order"))
	assert.Equal(t, "Order", UpperFirst("Order"))
	assert.Equal(t, "", UpperFirst(""))
	assert.Equal(t, "Ärger", UpperFirst("ärger"))

	assert.Equal(t, "order", LowerFirst("Order"))
	assert.Equal(t, "uRL", LowerFirst("URL"))
	assert.Equal(t, "", LowerFirst(""))
}

func TestExportedIdent(t *testing.T) {
	assert.Equal(t, "Geo", ExportedIdent("geo"))
	assert.Equal(t, "GoRedis", ExportedIdent("go-redis"))
	assert.Equal(t, "V1Api", ExportedIdent("v1_api"))
	assert.Equal(t, "", ExportedIdent("--"))
}

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "geo", PkgAlias("serde-generator/examples/basic/geo"))
	assert.Equal(t, "serde", PkgAlias("serde"))
	assert.Equal(t, "", PkgAlias(""))
}
