package xlogpoint

import (
	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
	"github.com/omeyang/xcall/pkg/logpoint/xrepeat"
	"github.com/omeyang/xcall/pkg/logpoint/xtemplate"
)

// LogPoint 一个操作构建完成的日志点，构建后不可变
type LogPoint struct {
	desc       *xop.Descriptor
	level      xlevel.Level
	throwLevel xlevel.Level
	template   *xtemplate.Template
	repeat     xrepeat.Controller
	sink       Sink
}

// Descriptor 返回规范化后的描述符
func (p *LogPoint) Descriptor() *xop.Descriptor { return p.desc }

// Level 返回解析后的调用级别
func (p *LogPoint) Level() xlevel.Level { return p.level }

// ThrowLevel 返回解析后的异常级别
func (p *LogPoint) ThrowLevel() xlevel.Level { return p.throwLevel }

// Template 返回编译后的消息模板
func (p *LogPoint) Template() *xtemplate.Template { return p.template }

// Sink 返回日志点使用的 sink
func (p *LogPoint) Sink() Sink { return p.sink }
