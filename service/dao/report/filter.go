// Package report provides boot report filtering shared by report stores.
package report

import (
	"github.com/viant/nucleus/model/report"
	"github.com/viant/nucleus/service/dao"
	"github.com/viant/nucleus/service/dao/criteria"
)

// Filter matches a report against Status and Image parameters
func Filter(r *report.Report, parameters []*dao.Parameter) bool {
	return criteria.Match("Status", r.Status, parameters) && criteria.Match("Image", r.Image, parameters)
}
