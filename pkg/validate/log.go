package validate

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("doxy2js.validate")
