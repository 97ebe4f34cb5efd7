package assemble

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("doxy2js.assemble")
